// Package entity defines the core domain entities for the feed delivery engine:
// feed definitions, content items, freshness tokens and validation results,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// FeedFormat identifies a wire format the engine can render.
type FeedFormat string

const (
	FormatRSS2     FeedFormat = "rss2"
	FormatAtom     FeedFormat = "atom"
	FormatJSONFeed FeedFormat = "json"
)

// BuiltinFormats lists every format the engine can serve at /feed/{format}/.
var BuiltinFormats = []FeedFormat{FormatRSS2, FormatAtom, FormatJSONFeed}

// IsBuiltinFormat reports whether s names one of the built-in wire formats.
func IsBuiltinFormat(s string) bool {
	switch FeedFormat(s) {
	case FormatRSS2, FormatAtom, FormatJSONFeed:
		return true
	}
	return false
}

// ContentType returns the MIME type feeds of this format are served with.
func (f FeedFormat) ContentType() string {
	switch f {
	case FormatAtom:
		return "application/atom+xml; charset=utf-8"
	case FormatJSONFeed:
		return "application/feed+json; charset=utf-8"
	default:
		return "application/rss+xml; charset=utf-8"
	}
}

// OrderBy enumerates the supported selection orderings.
type OrderBy string

const (
	OrderByDate         OrderBy = "date"
	OrderByTitle        OrderBy = "title"
	OrderByRandom       OrderBy = "random"
	OrderByCommentCount OrderBy = "commentCount"
)

// OrderDirection enumerates ascending/descending ordering.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// FeedDefinition is the stored configuration describing one syndication feed:
// its content filters, ordering and item limit. Definitions are created and
// edited by the administrative layer; the engine only reads them.
type FeedDefinition struct {
	Slug        string
	Title       string
	Description string

	// ContentTypes restricts the selection to the named repository content
	// types. Empty means every publishable type.
	ContentTypes []string

	// CategoryFilter and TagFilter hold taxonomy term IDs. Empty means no
	// filter for that taxonomy.
	CategoryFilter []int64
	TagFilter      []int64

	// TaxonomyFilter maps additional taxonomy names to accepted term slugs.
	// Terms within one taxonomy are ORed, distinct taxonomies are ANDed.
	TaxonomyFilter map[string][]string

	// DateFrom/DateTo bound publishedAt inclusively when non-nil.
	DateFrom *time.Time
	DateTo   *time.Time

	Limit          int
	OrderBy        OrderBy
	OrderDirection OrderDirection
	Enabled        bool
}

const (
	// MinFeedLimit and MaxFeedLimit bound the number of items a single
	// definition may select.
	MinFeedLimit = 1
	MaxFeedLimit = 100
)

// Validate checks the definition's structural invariants.
// It collects nothing; the first violated rule is returned.
func (d *FeedDefinition) Validate() error {
	if d.Slug == "" {
		return ErrEmptySlug
	}
	if IsBuiltinFormat(d.Slug) {
		return ErrReservedSlug
	}
	if d.Limit < MinFeedLimit || d.Limit > MaxFeedLimit {
		return ErrLimitOutOfRange
	}
	switch d.OrderBy {
	case OrderByDate, OrderByTitle, OrderByRandom, OrderByCommentCount:
	default:
		return ErrInvalidOrderBy
	}
	switch d.OrderDirection {
	case OrderAsc, OrderDesc:
	default:
		return ErrInvalidOrderDirection
	}
	if d.DateFrom != nil && d.DateTo != nil && d.DateFrom.After(*d.DateTo) {
		return ErrInvalidDateRange
	}
	return nil
}
