// Package version reports the build version stamped in by the linker.
package version

// These are overridden with -ldflags "-X wholesale/pkg/version.version=...".
var (
	version   = "dev"
	buildTime = "unknown"
)

// Version returns the release version.
func Version() string { return version }

// BuildTime returns when the binary was built.
func BuildTime() string { return buildTime }
