// Package version reports what binary is serving requests
package version

import (
	"runtime/debug"
	"sync"
)

// Set with -ldflags "-X creditrisk/internal/core/version.version=v0.3.1 -X ...commit=abcd -X ...date=2026-10-17"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is served by /meta/version and stamped on startup logs
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

var (
	infoOnce sync.Once
	info     BuildInfo
)

// Info returns ldflags values, falling back to the vcs stamp the go tool embeds
func Info() BuildInfo {
	infoOnce.Do(func() {
		info = resolve(debug.ReadBuildInfo())
	})
	return info
}

func resolve(bi *debug.BuildInfo, ok bool) BuildInfo {
	out := BuildInfo{Service: "creditrisk-api", Version: version, Commit: commit, Date: date}
	if !ok || bi == nil {
		return out
	}
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = s.Value
			}
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}
	return out
}
