// Package version carries build identification, overridden at link time.
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)
