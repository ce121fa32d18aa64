// Package admin provides JWT-protected HTTP handlers for operating the feed
// engine: cache invalidation, on-demand validation, rendered previews and
// definition listing.
package admin

import (
	"time"

	"feedgate/internal/domain/entity"
)

// DefinitionDTO is the JSON shape of one custom feed definition.
type DefinitionDTO struct {
	Slug           string              `json:"slug" example:"news"`
	Title          string              `json:"title" example:"Site News"`
	Description    string              `json:"description,omitempty"`
	ContentTypes   []string            `json:"content_types,omitempty"`
	CategoryFilter []int64             `json:"category_filter,omitempty"`
	TagFilter      []int64             `json:"tag_filter,omitempty"`
	TaxonomyFilter map[string][]string `json:"taxonomy_filter,omitempty"`
	DateFrom       *time.Time          `json:"date_from,omitempty"`
	DateTo         *time.Time          `json:"date_to,omitempty"`
	Limit          int                 `json:"limit" example:"20"`
	OrderBy        string              `json:"order_by" example:"date"`
	OrderDirection string              `json:"order_direction" example:"desc"`
	Enabled        bool                `json:"enabled"`
}

func definitionDTO(d entity.FeedDefinition) DefinitionDTO {
	return DefinitionDTO{
		Slug:           d.Slug,
		Title:          d.Title,
		Description:    d.Description,
		ContentTypes:   d.ContentTypes,
		CategoryFilter: d.CategoryFilter,
		TagFilter:      d.TagFilter,
		TaxonomyFilter: d.TaxonomyFilter,
		DateFrom:       d.DateFrom,
		DateTo:         d.DateTo,
		Limit:          d.Limit,
		OrderBy:        string(d.OrderBy),
		OrderDirection: string(d.OrderDirection),
		Enabled:        d.Enabled,
	}
}

// ValidationDTO is the JSON shape of one validation result.
type ValidationDTO struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Info     []string `json:"info"`

	LoadTimeMs   int64 `json:"load_time_ms"`
	SizeBytes    int64 `json:"size_bytes"`
	ResponseCode int   `json:"response_code,omitempty"`
}

func validationDTO(r *entity.ValidationResult) ValidationDTO {
	out := ValidationDTO{
		Valid:        r.Valid,
		Errors:       r.Errors,
		Warnings:     r.Warnings,
		Info:         r.Info,
		LoadTimeMs:   r.Performance.LoadTime.Milliseconds(),
		SizeBytes:    r.Performance.SizeBytes,
		ResponseCode: r.Performance.ResponseCode,
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	if out.Info == nil {
		out.Info = []string{}
	}
	return out
}
