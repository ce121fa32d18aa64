package settings

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"feedgate/internal/domain/entity"
)

// FileStore is a YAML-backed Store. The file is read once at construction and
// again on Reload; reads between reloads are served from memory under a
// read lock, so the store is safe for concurrent request handlers.
type FileStore struct {
	path string

	mu          sync.RWMutex
	values      map[string]any
	definitions []entity.FeedDefinition
}

// settingsFile mirrors the on-disk YAML document.
type settingsFile struct {
	Settings map[string]any   `yaml:"settings"`
	Feeds    []feedDefinition `yaml:"feeds"`
}

type feedDefinition struct {
	Slug           string              `yaml:"slug"`
	Title          string              `yaml:"title"`
	Description    string              `yaml:"description"`
	ContentTypes   []string            `yaml:"content_types"`
	Categories     []int64             `yaml:"categories"`
	Tags           []int64             `yaml:"tags"`
	Taxonomies     map[string][]string `yaml:"taxonomies"`
	DateFrom       string              `yaml:"date_from"`
	DateTo         string              `yaml:"date_to"`
	Limit          int                 `yaml:"limit"`
	OrderBy        string              `yaml:"order_by"`
	OrderDirection string              `yaml:"order_direction"`
	Enabled        bool                `yaml:"enabled"`
}

// NewFileStore loads the settings document at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the settings file. On parse failure the previously loaded
// values are kept so a bad edit cannot take the feed surface down.
func (s *FileStore) Reload() error {
	// #nosec G304 -- path comes from CLI flag or env, not request input
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}

	var doc settingsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse settings file: %w", err)
	}

	defs := make([]entity.FeedDefinition, 0, len(doc.Feeds))
	for _, f := range doc.Feeds {
		def, err := f.toEntity()
		if err != nil {
			return fmt.Errorf("feed %q: %w", f.Slug, err)
		}
		defs = append(defs, def)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Settings != nil {
		s.values = doc.Settings
	} else {
		s.values = map[string]any{}
	}
	s.definitions = defs
	return nil
}

func (f feedDefinition) toEntity() (entity.FeedDefinition, error) {
	def := entity.FeedDefinition{
		Slug:           f.Slug,
		Title:          f.Title,
		Description:    f.Description,
		ContentTypes:   f.ContentTypes,
		CategoryFilter: f.Categories,
		TagFilter:      f.Tags,
		TaxonomyFilter: f.Taxonomies,
		Limit:          f.Limit,
		OrderBy:        entity.OrderBy(f.OrderBy),
		OrderDirection: entity.OrderDirection(f.OrderDirection),
		Enabled:        f.Enabled,
	}
	if def.OrderBy == "" {
		def.OrderBy = entity.OrderByDate
	}
	if def.OrderDirection == "" {
		def.OrderDirection = entity.OrderDesc
	}
	if f.DateFrom != "" {
		t, err := time.Parse(time.RFC3339, f.DateFrom)
		if err != nil {
			return def, fmt.Errorf("date_from: %w", err)
		}
		def.DateFrom = &t
	}
	if f.DateTo != "" {
		t, err := time.Parse(time.RFC3339, f.DateTo)
		if err != nil {
			return def, fmt.Errorf("date_to: %w", err)
		}
		def.DateTo = &t
	}
	if err := def.Validate(); err != nil {
		return def, err
	}
	return def, nil
}

// GetBool returns the boolean setting for key, or def when absent or mistyped.
func (s *FileStore) GetBool(key string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return def
}

// GetInt returns the integer setting for key, or def when absent or mistyped.
func (s *FileStore) GetInt(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch v := s.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// GetString returns the string setting for key, or def when absent or mistyped.
func (s *FileStore) GetString(key string, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return def
}

// Definitions returns a copy of the loaded feed definitions.
func (s *FileStore) Definitions() ([]entity.FeedDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.FeedDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out, nil
}
