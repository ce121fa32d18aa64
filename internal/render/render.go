// Package render serializes content selections into syndication wire formats
// (RSS 2.0, Atom, JSON Feed 1.1). Rendering is pure: given the same site,
// definition and items it produces byte-identical output, performs no I/O and
// never re-sorts; item order is the selection's order.
package render

import (
	"fmt"
	"strings"
	"time"

	"feedgate/internal/domain/entity"
)

// Site carries the site identity rendered into channel/feed headers.
type Site struct {
	URL         string
	Title       string
	Description string
}

// FeedURL returns the canonical self URL for a feed slug.
func (s Site) FeedURL(slug string) string {
	return strings.TrimRight(s.URL, "/") + "/feed/" + slug + "/"
}

// Feed renders items according to the requested wire format.
func Feed(format entity.FeedFormat, site Site, def entity.FeedDefinition, items []*entity.ContentItem) ([]byte, error) {
	switch format {
	case entity.FormatRSS2:
		return RSS2(site, def, items)
	case entity.FormatAtom:
		return Atom(site, def, items)
	case entity.FormatJSONFeed:
		return JSONFeed(site, def, items)
	default:
		return nil, fmt.Errorf("unsupported feed format %q", format)
	}
}

// channelTitle prefers the definition's title and falls back to the site's.
func channelTitle(site Site, def entity.FeedDefinition) string {
	if def.Title != "" {
		return def.Title
	}
	return site.Title
}

func channelDescription(site Site, def entity.FeedDefinition) string {
	if def.Description != "" {
		return def.Description
	}
	return site.Description
}

// itemGUID returns the item's stable non-permalink GUID. Permalinks move when
// slugs or site structure change; the query form survives both.
func itemGUID(site Site, item *entity.ContentItem) string {
	return fmt.Sprintf("%s/?feed_item=%d", strings.TrimRight(site.URL, "/"), item.ID)
}

// lastTouched returns the most recent modification instant across items,
// falling back to publish times. Derived from items only, never from the
// render-time clock, so identical inputs render identically.
func lastTouched(items []*entity.ContentItem) time.Time {
	var max time.Time
	for _, item := range items {
		if item.ModifiedAt.After(max) {
			max = item.ModifiedAt
		}
		if item.PublishedAt.After(max) {
			max = item.PublishedAt
		}
	}
	return max
}
