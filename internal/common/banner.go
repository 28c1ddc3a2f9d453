package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner writes the application banner and build details to w.
func PrintBanner(w io.Writer, config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 62
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`  ___  ___ _ __ | |_(_)_ __   ___| |`,
		` / __|/ _ \ '_ \| __| | '_ \ / _ \ |`,
		` \__ \  __/ | | | |_| | | | |  __/ |`,
		` |___/\___|_| |_|\__|_|_| |_|\___|_|`,
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Black Swan Sentinel: Financial Risk Dashboard%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n%s\n\n", hr)

	kvPad := 14
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"API URL", config.API.BaseURL},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Debug().
		Str("version", version).
		Str("build", build).
		Str("commit", commit).
		Str("api_url", config.API.BaseURL).
		Msg("Version requested")
}
