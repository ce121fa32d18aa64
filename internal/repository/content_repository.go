// Package repository declares the persistence interfaces the engine consumes.
// The content repository belongs to the CMS; the engine only queries it.
package repository

import (
	"context"
	"time"

	"feedgate/internal/domain/entity"
)

// ContentFilters is the translated query form of a feed definition's
// filter-relevant fields. Within a single taxonomy the listed terms are ORed;
// distinct filters (types, categories, tags, taxonomies, dates) are ANDed.
type ContentFilters struct {
	ContentTypes []string
	Categories   []int64
	Tags         []int64
	Taxonomies   map[string][]string

	// From/To bound publishedAt inclusively when non-nil.
	From *time.Time
	To   *time.Time

	Limit     int
	OrderBy   entity.OrderBy
	Direction entity.OrderDirection
}

// ContentRepository is the engine's read-only view of the CMS content store.
type ContentRepository interface {
	// Query returns the ordered selection of published items matching the
	// filters, capped at filters.Limit.
	Query(ctx context.Context, filters ContentFilters) ([]*entity.ContentItem, error)

	// LastModified returns the most recent modifiedAt across published
	// items of the given content types (all types when empty). It is the
	// cheap sitewide freshness bound used for conditional requests.
	LastModified(ctx context.Context, contentTypes []string) (time.Time, error)
}
