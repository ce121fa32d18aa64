package settings

import (
	"sync"

	"feedgate/internal/domain/entity"
)

// Memory is an in-memory Store used by tests and single-process setups where
// no settings file exists. The zero value is usable.
type Memory struct {
	mu     sync.RWMutex
	values map[string]any
	defs   []entity.FeedDefinition
}

// NewMemory returns a Memory store seeded with the given values.
func NewMemory(values map[string]any, defs []entity.FeedDefinition) *Memory {
	if values == nil {
		values = map[string]any{}
	}
	return &Memory{values: values, defs: defs}
}

// Set stores a value under key.
func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]any{}
	}
	m.values[key] = value
}

// SetDefinitions replaces the stored feed definitions.
func (m *Memory) SetDefinitions(defs []entity.FeedDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defs = defs
}

func (m *Memory) GetBool(key string, def bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return def
}

func (m *Memory) GetInt(key string, def int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return def
}

func (m *Memory) GetString(key string, def string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return def
}

func (m *Memory) Definitions() ([]entity.FeedDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.FeedDefinition, len(m.defs))
	copy(out, m.defs)
	return out, nil
}
