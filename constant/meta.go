// Package constant defines immutable application-level identifiers.
package constant

const (
	// Afcharts is the canonical application identifier used for filesystem paths, env vars and CLI branding.
	Afcharts = "afcharts"

	// Version is the current application semantic version string.
	Version = "0.3.0"
)

// Build metadata, set through -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
