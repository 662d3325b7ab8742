// Package version holds the build version of nsdebug.
// Version and Commit are set at link time:
//
//	go build -ldflags "-X github.com/lucas-albers-lz4/nsdebug/pkg/version.Version=v0.2.0+g1a2b3c4"
package version

import (
	"fmt"
	"strings"
)

var (
	// Version is the release tag the binary was built from.
	Version = "v0.0.0-dev"
	// Commit is the git revision the binary was built from.
	Commit = "unknown"
)

// parseVersionString extracts the core semantic version (e.g., "0.2.0")
// from a tag such as "v0.2.0+g1a2b3c4". It removes the leading 'v' and any
// build metadata suffix starting with '+'.
func parseVersionString(versionStr string) string {
	parsed := strings.TrimSpace(versionStr)
	parsed = strings.TrimPrefix(parsed, "v")
	//nolint:nilaway // strings.Split always returns non-nil slice
	parsed = strings.Split(parsed, "+")[0]
	return parsed
}

// Semver returns Version without the leading 'v' and build metadata.
func Semver() string {
	return parseVersionString(Version)
}

// String returns the human readable version line printed by the CLI.
func String() string {
	return fmt.Sprintf("nsdebug %s (commit %s)", Semver(), Commit)
}
