// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog - location of the admin-maintained content file.
const (
	CatalogPath = "catalog.path"
)

// Site branding, used in media titles and share texts.
const (
	SiteName = "site.name"
)

// Sharing - these keys shape produced links and the share fallback chain.
const (
	ShareBaseURL   = "share.base_url"
	ShareNative    = "share.native"
	ShareClipboard = "share.clipboard"
)

// Media Playback - these keys configure the media element backend.
const (
	Player          = "player.default"
	PlayerNativeHLS = "player.native_hls"
	PlayerAutoplay  = "player.autoplay"
	PlayerEmbedApp  = "player.embed_app"
)

// Adaptive streaming - these keys tune the manifest-driving stream client.
const (
	HLSMaxBandwidth = "hls.max_bandwidth"
	HLSRetries      = "hls.retries"
	HLSLiveRefresh  = "hls.live_refresh"
)

// Title insights - the assistant answering questions about the open title.
const (
	InsightsAPIKey = "insights.api_key"
	InsightsModel  = "insights.model"
)

// Networking
const (
	NetworkImpersonateTLS = "network.impersonate_tls"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
