// Package app wires configuration, engines and front ends into the bigcalc
// command: mode dispatch, lifecycle and version reporting.
package app

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
)

// Release metadata, stamped at link time:
//
//	go build -ldflags="-X github.com/agbru/bigcalc/internal/app.Version=v1.2.3 -X github.com/agbru/bigcalc/internal/app.Commit=abc123 -X github.com/agbru/bigcalc/internal/app.BuildDate=2025-01-01T00:00:00Z"
//
// Unset values fall back to the VCS stamp embedded by the Go toolchain.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// revisionLen is the number of commit hash characters shown.
const revisionLen = 12

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// ReadBuildInfo merges the link-time metadata with the module and VCS
// information recorded in the binary. Link-time values win.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > revisionLen {
		return rev[:revisionLen]
	}
	return rev
}

// String renders the -version report.
func (b BuildInfo) String() string {
	commit := b.Commit
	if b.Modified {
		commit += " (modified)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "bigcalc %s\n", b.Version)
	fmt.Fprintf(&sb, "  commit:   %s\n", commit)
	fmt.Fprintf(&sb, "  built:    %s\n", b.BuildDate)
	fmt.Fprintf(&sb, "  go:       %s\n", b.GoVersion)
	fmt.Fprintf(&sb, "  platform: %s\n", b.Platform)
	return sb.String()
}

// IsVersionRequest reports whether args ask for the version. It is checked
// before flag parsing so "bigcalc -server -version" prints the version
// without starting the server.
func IsVersionRequest(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return arg == "-version" || arg == "--version" || arg == "-V"
	})
}
