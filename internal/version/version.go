// Package version reports the build version of ozw-commander.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// AppName is the program name shown in the About dialog and CLI.
const AppName = "ozw-commander"

// Set at build time:
//
//	go build -ldflags="-X github.com/buzzdavidson/ozwcommander/internal/version.Version=v0.3.0 \
//	                   -X github.com/buzzdavidson/ozwcommander/internal/version.Commit=abc1234"
//
// Unset values are filled from the module's VCS stamp, then from "dev".
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fromSettings(info.Settings)
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fromSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if vcs["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}
	if stamp := vcs["vcs.time"]; Version == "" && stamp != "" {
		if t, err := time.Parse(time.RFC3339, stamp); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version with its commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Banner returns the program name and full version.
func Banner() string {
	return AppName + " " + Full()
}
