// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 19

// Feed Catalog - these keys govern the retrieval and sequencing of the video feed.
const (
	FeedEndpoint         = "feed.endpoint"
	FeedLimit            = "feed.limit"
	FeedAutoplay         = "feed.autoplay"
	FeedManualActivation = "feed.manual_activation"
	FeedCacheLifetime    = "feed.cache_lifetime"
)

// Media Playback - these keys maintain the state and configuration for external video players.
const (
	Player                     = "player.default"
	PlayerID                   = "player.id"
	PlayerMute                 = "player.mute"
	PlayerCustomParams         = "player.custom_params"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// History Tracking - these keys configure the persistence of playback progress.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the feed view's styling and logic.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
