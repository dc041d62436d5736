// Package buildinfo reports the version of the frametree binary.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/frametree/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/frametree/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Binaries built with go install carry no ldflags; [Resolve] falls back to
// the module version and VCS revision embedded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, "dev" when unstamped.
	Version = "dev"

	// Commit is the short git revision.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is a resolved set of build values.
type Info struct {
	Version, Commit, Date string
}

// Resolve returns the stamped values, filling unstamped ones from the
// embedded build information when available.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fill(info, bi)
}

func fill(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && s.Value != "" {
				info.Commit = s.Value[:min(len(s.Value), 7)]
			}
		case "vcs.time":
			if info.Date == "unknown" && s.Value != "" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// Template returns the cobra version template.
func Template() string {
	info := Resolve()
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", info.Version, info.Commit, info.Date)
}
