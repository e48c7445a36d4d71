// Package version provides build version information for permsweep.
package version

import "fmt"

// Populated via ldflags at release build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full returns the version with build information, e.g.
// "v0.2.0 (commit: abc123, built: 2026-08-01T10:30:00Z)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
