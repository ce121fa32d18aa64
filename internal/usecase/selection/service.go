// Package selection provides the cached content-selection use case: applying
// a feed definition's filters to the content repository and memoizing the
// resulting item list under a short TTL.
package selection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"feedgate/internal/domain/entity"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/repository"
)

// CacheStore is the external keyed store the service memoizes selections in.
// Implementations must be safe for concurrent use; last-write-wins semantics
// are acceptable when concurrent misses race to populate the same key.
type CacheStore interface {
	Get(key string) ([]*entity.ContentItem, bool)
	Set(key string, items []*entity.ContentItem, ttl time.Duration)
	Delete(key string)
	Flush()
}

// Service resolves feed definitions into ordered content selections,
// consulting the cache before the repository.
type Service struct {
	Repo  repository.ContentRepository
	Cache CacheStore

	// TTL bounds how stale a cached selection may be served. Kept short so
	// feeds reflect new publications promptly.
	TTL time.Duration

	// keys remembers the last cache key built per slug so an invalidation
	// after a definition edit still hits the entry built under the old
	// filter set.
	mu   sync.Mutex
	keys map[string]string
}

// NewService creates a selection service with the given repository, cache and
// TTL. A non-positive TTL falls back to 15 minutes.
func NewService(repo repository.ContentRepository, cache CacheStore, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		Repo:  repo,
		Cache: cache,
		TTL:   ttl,
		keys:  make(map[string]string),
	}
}

// GetOrBuild returns the definition's current selection, serving from cache
// within the TTL window and querying the repository on a miss. A failed query
// is propagated and never cached.
func (s *Service) GetOrBuild(ctx context.Context, def entity.FeedDefinition) ([]*entity.ContentItem, error) {
	key := CacheKey(def)

	if items, ok := s.Cache.Get(key); ok {
		metrics.RecordSelectionCacheHit(def.Slug)
		return items, nil
	}
	metrics.RecordSelectionCacheMiss(def.Slug)

	items, err := s.Repo.Query(ctx, filtersFor(def))
	if err != nil {
		return nil, fmt.Errorf("query selection for %q: %w", def.Slug, err)
	}

	s.Cache.Set(key, items, s.TTL)
	s.rememberKey(def.Slug, key)
	return items, nil
}

// Invalidate drops the cached selection for the given definition slug.
// Unknown slugs are a no-op.
func (s *Service) Invalidate(slug string) {
	s.mu.Lock()
	key, ok := s.keys[slug]
	if ok {
		delete(s.keys, slug)
	}
	s.mu.Unlock()

	if ok {
		s.Cache.Delete(key)
	}
}

// InvalidateAll drops every cached selection. Called when content is
// published, updated or deleted, since any change may affect any feed.
//
// Neither invalidation method records metrics; the caller knows the cause
// (content change, admin action, preview) and records it.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	s.keys = make(map[string]string)
	s.mu.Unlock()

	s.Cache.Flush()
}

func (s *Service) rememberKey(slug, key string) {
	s.mu.Lock()
	s.keys[slug] = key
	s.mu.Unlock()
}

// filtersFor translates a definition's filter fields into a repository query.
func filtersFor(def entity.FeedDefinition) repository.ContentFilters {
	return repository.ContentFilters{
		ContentTypes: def.ContentTypes,
		Categories:   def.CategoryFilter,
		Tags:         def.TagFilter,
		Taxonomies:   def.TaxonomyFilter,
		From:         def.DateFrom,
		To:           def.DateTo,
		Limit:        def.Limit,
		OrderBy:      def.OrderBy,
		Direction:    def.OrderDirection,
	}
}
