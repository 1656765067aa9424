// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "seriesgenius"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// Repository is the GitHub owner/name releases are published under.
	Repository = "seriesgenius/seriesgenius"

	// UserAgent is the default HTTP User-Agent string used for manifest and segment requests.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, injected with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
