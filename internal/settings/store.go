// Package settings provides the engine's view of the shared configuration
// store: capability flags, cache tuning and the list of custom feed
// definitions. The store is injected as a capability so tests can substitute
// in-memory fakes.
package settings

import "feedgate/internal/domain/entity"

// Keys the engine reads. The administrative layer owns the values.
const (
	KeyRSS2Enabled        = "feeds.rss2_enabled"
	KeyAtomEnabled        = "feeds.atom_enabled"
	KeyJSONEnabled        = "feeds.json_enabled"
	KeyConditionalEnabled = "feeds.conditional_get_enabled"
	KeyGzipEnabled        = "feeds.gzip_enabled"
	KeyCacheMaxAge        = "feeds.cache_max_age_seconds"
	KeySelectionTTL       = "feeds.selection_ttl_seconds"
	KeySiteURL            = "site.url"
	KeySiteTitle          = "site.title"
	KeySiteDescription    = "site.description"
)

// Defaults applied when a key is absent from the store.
const (
	DefaultCacheMaxAge  = 300
	DefaultSelectionTTL = 900 // feeds must reflect new publications promptly
)

// Store is the configuration capability consumed by the engine.
// Implementations must be safe for concurrent readers.
type Store interface {
	GetBool(key string, def bool) bool
	GetInt(key string, def int) int
	GetString(key string, def string) string

	// Definitions returns every custom feed definition, enabled or not.
	Definitions() ([]entity.FeedDefinition, error)
}

// Reloader is implemented by stores that can re-read their backing source.
// The administrative layer edits configuration out of process, so reload
// points (cache invalidation, sweep start) check for this interface to pick
// up changes without a restart.
type Reloader interface {
	Reload() error
}
