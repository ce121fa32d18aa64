package entity_test

import (
	"testing"
	"time"

	"feedgate/internal/domain/entity"
)

func validDefinition() entity.FeedDefinition {
	return entity.FeedDefinition{
		Slug:           "news",
		Title:          "News",
		ContentTypes:   []string{"post"},
		Limit:          10,
		OrderBy:        entity.OrderByDate,
		OrderDirection: entity.OrderDesc,
		Enabled:        true,
	}
}

func TestFeedDefinitionValidate(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*entity.FeedDefinition)
		wantErr error
	}{
		{"valid", func(d *entity.FeedDefinition) {}, nil},
		{"empty slug", func(d *entity.FeedDefinition) { d.Slug = "" }, entity.ErrEmptySlug},
		{"reserved slug rss2", func(d *entity.FeedDefinition) { d.Slug = "rss2" }, entity.ErrReservedSlug},
		{"reserved slug json", func(d *entity.FeedDefinition) { d.Slug = "json" }, entity.ErrReservedSlug},
		{"limit zero", func(d *entity.FeedDefinition) { d.Limit = 0 }, entity.ErrLimitOutOfRange},
		{"limit above max", func(d *entity.FeedDefinition) { d.Limit = 101 }, entity.ErrLimitOutOfRange},
		{"bad order by", func(d *entity.FeedDefinition) { d.OrderBy = "popularity" }, entity.ErrInvalidOrderBy},
		{"bad direction", func(d *entity.FeedDefinition) { d.OrderDirection = "up" }, entity.ErrInvalidOrderDirection},
		{"inverted date range", func(d *entity.FeedDefinition) { d.DateFrom = &from; d.DateTo = &to }, entity.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)
			if got := def.Validate(); got != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestIsBuiltinFormat(t *testing.T) {
	for _, f := range []string{"rss2", "atom", "json"} {
		if !entity.IsBuiltinFormat(f) {
			t.Errorf("IsBuiltinFormat(%q) = false, want true", f)
		}
	}
	for _, f := range []string{"rss", "rdf", "", "news"} {
		if entity.IsBuiltinFormat(f) {
			t.Errorf("IsBuiltinFormat(%q) = true, want false", f)
		}
	}
}

func TestFormatContentType(t *testing.T) {
	tests := map[entity.FeedFormat]string{
		entity.FormatRSS2:     "application/rss+xml; charset=utf-8",
		entity.FormatAtom:     "application/atom+xml; charset=utf-8",
		entity.FormatJSONFeed: "application/feed+json; charset=utf-8",
	}
	for format, want := range tests {
		if got := format.ContentType(); got != want {
			t.Errorf("%s.ContentType() = %q, want %q", format, got, want)
		}
	}
}
