package selection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"feedgate/internal/domain/entity"
	"feedgate/internal/usecase/selection"
)

func baseDefinition() entity.FeedDefinition {
	return entity.FeedDefinition{
		Slug:           "news",
		Title:          "News",
		Description:    "Latest news",
		ContentTypes:   []string{"post", "page"},
		CategoryFilter: []int64{3, 1, 2},
		TagFilter:      []int64{9},
		TaxonomyFilter: map[string][]string{"show": {"weekly", "daily"}},
		Limit:          10,
		OrderBy:        entity.OrderByDate,
		OrderDirection: entity.OrderDesc,
		Enabled:        true,
	}
}

func TestCacheKeyStableAcrossCosmetics(t *testing.T) {
	a := baseDefinition()
	b := baseDefinition()
	b.Title = "Renamed"
	b.Description = "New description"
	b.Enabled = false
	b.Slug = "other"

	assert.Equal(t, selection.CacheKey(a), selection.CacheKey(b),
		"cosmetic fields must not contribute to the cache key")
}

func TestCacheKeyIgnoresSetOrdering(t *testing.T) {
	a := baseDefinition()
	b := baseDefinition()
	b.ContentTypes = []string{"page", "post"}
	b.CategoryFilter = []int64{1, 2, 3}
	b.TaxonomyFilter = map[string][]string{"show": {"daily", "weekly"}}

	assert.Equal(t, selection.CacheKey(a), selection.CacheKey(b))
}

func TestCacheKeyChangesWithFilters(t *testing.T) {
	base := baseDefinition()
	baseKey := selection.CacheKey(base)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mutations := map[string]func(*entity.FeedDefinition){
		"content types":   func(d *entity.FeedDefinition) { d.ContentTypes = []string{"post"} },
		"categories":      func(d *entity.FeedDefinition) { d.CategoryFilter = []int64{1, 2} },
		"tags":            func(d *entity.FeedDefinition) { d.TagFilter = nil },
		"taxonomy terms":  func(d *entity.FeedDefinition) { d.TaxonomyFilter = map[string][]string{"show": {"weekly"}} },
		"date from":       func(d *entity.FeedDefinition) { d.DateFrom = &from },
		"limit":           func(d *entity.FeedDefinition) { d.Limit = 11 },
		"order by":        func(d *entity.FeedDefinition) { d.OrderBy = entity.OrderByTitle },
		"order direction": func(d *entity.FeedDefinition) { d.OrderDirection = entity.OrderAsc },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			def := baseDefinition()
			mutate(&def)
			assert.NotEqual(t, baseKey, selection.CacheKey(def))
		})
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	def := baseDefinition()
	assert.Equal(t, selection.CacheKey(def), selection.CacheKey(def))
	assert.Len(t, selection.CacheKey(def), 64)
}
