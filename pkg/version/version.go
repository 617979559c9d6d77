// Package version exposes the commutree build version.
package version

// version is set at build time via -ldflags "-X github.com/rshade/commutree/pkg/version.version=...".
//
//nolint:gochecknoglobals // Build-time injection target.
var version = "0.1.0-dev"

// GetVersion returns the current commutree version string.
func GetVersion() string {
	return version
}
