// Package version reports build provenance for the pyhints binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/matsim-eth/python-matsim/naming"
)

// Set at build time via -ldflags "-X". Unset values fall back to the VCS
// stamp the go toolchain embeds.
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info describes the running binary.
type Info struct {
	Version        string `json:"version"`
	CommitHash     string `json:"commit_hash"`
	BuildTime      string `json:"build_time"`
	Modified       bool   `json:"modified,omitempty"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
	DefaultRuntime string `json:"default_binding_runtime"`
}

// Get returns the current version information
func Get() Info {
	info := Info{
		Version:        Version,
		CommitHash:     CommitHash,
		BuildTime:      BuildTime,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		DefaultRuntime: naming.DefaultRuntimeVersion,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyBuildInfo(bi)
	}
	return info
}

// applyBuildInfo fills whatever ldflags left at its placeholder.
func (i *Info) applyBuildInfo(bi *debug.BuildInfo) {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.CommitHash == "dev" {
				i.CommitHash = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
}

func (i Info) String() string {
	commit := i.Short()
	if i.Modified {
		commit += "+dirty"
	}
	return fmt.Sprintf("pyhints %s (commit %s, built %s)", i.Version, commit, i.BuildTime)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
