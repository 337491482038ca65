// Package version is used by the release process to add an
// informative version string to the netproto commands.
package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/els0r/netproto/pkg/protocols"
)

// These strings are overwritten via -ldflags "-X" during the release process
var (
	SemVer    = "devel"
	GitSHA    = ""
	BuildTime = ""
)

const shortSHALen = 8

// Short returns the semantic version, suffixed with the abbreviated commit if known
func Short() string {
	if len(GitSHA) < shortSHALen {
		return SemVer
	}
	return SemVer + "-" + GitSHA[:shortSHALen]
}

// Version returns a newline-terminated string describing the current
// version of the build.
func Version() string {
	if GitSHA == "" {
		return fmt.Sprintf("    Version:        %s\n    Protocol API:   %s\n", SemVer, protocols.Version)
	}

	buildTime := BuildTime
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		buildTime = t.In(time.UTC).Format(time.Stamp + " 2006 UTC")
	}
	return fmt.Sprintf(`    Version:        %s
    Protocol API:   %s
    Build time:     %s
    Git hash:       %s
    Go version:     %s
`, SemVer,
		protocols.Version,
		buildTime,
		GitSHA,
		runtime.Version(),
	)
}
