package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errEmptyPassword = errors.New("password must not be empty")

// readPassword prompts on out and reads a password from in. Terminal input
// is read without echo; piped input is read as one line.
func readPassword(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	var (
		raw string
		err error
	)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		var b []byte
		b, err = term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		raw = string(b)
	} else {
		raw, err = readLine(in)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	pw := strings.TrimRight(raw, "\r\n")
	if pw == "" {
		return "", errEmptyPassword
	}
	return pw, nil
}

// readLine reads up to and excluding the next newline one byte at a time,
// so successive prompts can share an unbuffered reader.
func readLine(in io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
	}
}
