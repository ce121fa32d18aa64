// Package cache provides the in-process selection cache store backed by
// patrickmn/go-cache. Entries expire after their per-entry TTL and a
// janitor goroutine sweeps expired entries in the background.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"feedgate/internal/domain/entity"
)

// Memory is an in-memory TTL store implementing selection.CacheStore.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a Memory store. defaultTTL applies when Set is called
// with a non-positive TTL; cleanupInterval controls the expiry sweep.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the cached selection for key, if present and unexpired.
// The returned slice is a copy; callers may not mutate cached items through it.
func (m *Memory) Get(key string) ([]*entity.ContentItem, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, false
	}
	items, ok := v.([]*entity.ContentItem)
	if !ok {
		return nil, false
	}
	out := make([]*entity.ContentItem, len(items))
	copy(out, items)
	return out, true
}

// Set stores the selection under key with the given TTL.
func (m *Memory) Set(key string, items []*entity.ContentItem, ttl time.Duration) {
	stored := make([]*entity.ContentItem, len(items))
	copy(stored, items)
	if ttl <= 0 {
		m.cache.Set(key, stored, gocache.DefaultExpiration)
		return
	}
	m.cache.Set(key, stored, ttl)
}

// Delete removes the entry for key.
func (m *Memory) Delete(key string) {
	m.cache.Delete(key)
}

// Flush removes every entry.
func (m *Memory) Flush() {
	m.cache.Flush()
}

// Len reports the number of live entries, expired entries included until the
// next sweep.
func (m *Memory) Len() int {
	return m.cache.ItemCount()
}
