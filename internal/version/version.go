// Package version carries build metadata injected with ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/folio/internal/version.Version=v1.0.0"
package version

import "fmt"

// Version is the release tag of the binary.
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version and reported by /health.
func String() string {
	return fmt.Sprintf("folio %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
