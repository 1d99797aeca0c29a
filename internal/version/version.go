// Package version holds build metadata injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build metadata reported by GET /version and the startup log.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Get returns the metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

// String formats the metadata as "assetsearch <version> (<commit>, built <date>)".
func (i Info) String() string {
	return fmt.Sprintf("assetsearch %s (%s, built %s)", i.Version, shortCommit(i.Commit), i.Date)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
