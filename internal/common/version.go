package common

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X github.com/bobmcallan/sentinel/internal/common.Version=..." at release time.
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion is the release version, "dev" for local builds.
func GetVersion() string { return Version }

// GetBuild is the build stamp shown by sentinel version.
func GetBuild() string { return Build }

// GetGitCommit is the commit the binary was built from.
func GetGitCommit() string { return GitCommit }

// UserAgent is the User-Agent sent by the API client.
func UserAgent() string {
	return "sentinel/" + Version
}

// LoadVersionFromFile fills Version and Build from a .version file next to
// the binary, but only where ldflags left the defaults in place.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	applyVersionFile(filepath.Join(filepath.Dir(exe), ".version"))
}

func applyVersionFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "version":
			if Version == "dev" {
				Version = val
			}
		case "build":
			if Build == "unknown" {
				Build = val
			}
		case "commit":
			if GitCommit == "unknown" {
				GitCommit = val
			}
		}
	}
}
