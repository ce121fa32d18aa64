package render

import (
	"encoding/json"
	"fmt"
	"time"

	"feedgate/internal/domain/entity"
)

const jsonFeedVersion = "https://jsonfeed.org/version/1.1"

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	HomePageURL string         `json:"home_page_url,omitempty"`
	FeedURL     string         `json:"feed_url,omitempty"`
	Description string         `json:"description,omitempty"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	ID            string           `json:"id"`
	URL           string           `json:"url,omitempty"`
	Title         string           `json:"title,omitempty"`
	ContentHTML   string           `json:"content_html,omitempty"`
	ContentText   string           `json:"content_text,omitempty"`
	Summary       string           `json:"summary,omitempty"`
	DatePublished string           `json:"date_published,omitempty"`
	DateModified  string           `json:"date_modified,omitempty"`
	Authors       []jsonFeedAuthor `json:"authors,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Attachments   []jsonFeedAttach `json:"attachments,omitempty"`
}

type jsonFeedAuthor struct {
	Name string `json:"name"`
}

type jsonFeedAttach struct {
	URL         string `json:"url"`
	MIMEType    string `json:"mime_type"`
	SizeInBytes int64  `json:"size_in_bytes,omitempty"`
}

// JSONFeed renders items as a JSON Feed 1.1 document.
func JSONFeed(site Site, def entity.FeedDefinition, items []*entity.ContentItem) ([]byte, error) {
	feed := jsonFeed{
		Version:     jsonFeedVersion,
		Title:       channelTitle(site, def),
		HomePageURL: site.URL,
		FeedURL:     site.FeedURL(def.Slug),
		Description: channelDescription(site, def),
		Items:       make([]jsonFeedItem, 0, len(items)),
	}

	for _, item := range items {
		out := jsonFeedItem{
			ID:      itemGUID(site, item),
			URL:     item.Permalink,
			Title:   item.Title,
			Summary: HTMLToText(item.Excerpt),
		}
		if item.BodyHTML != "" {
			out.ContentHTML = item.BodyHTML
			out.ContentText = HTMLToText(item.BodyHTML)
		} else if item.Excerpt != "" {
			out.ContentText = HTMLToText(item.Excerpt)
		}
		if !item.PublishedAt.IsZero() {
			out.DatePublished = item.PublishedAt.UTC().Format(time.RFC3339)
		}
		if !item.ModifiedAt.IsZero() {
			out.DateModified = item.ModifiedAt.UTC().Format(time.RFC3339)
		}
		if item.AuthorName != "" {
			out.Authors = []jsonFeedAuthor{{Name: item.AuthorName}}
		}
		if len(item.Tags) > 0 || len(item.Categories) > 0 {
			out.Tags = append(out.Tags, item.Categories...)
			out.Tags = append(out.Tags, item.Tags...)
		}
		for _, enc := range item.Enclosures {
			out.Attachments = append(out.Attachments, jsonFeedAttach{
				URL:         enc.URL,
				MIMEType:    enc.MIMEType,
				SizeInBytes: enc.LengthBytes,
			})
		}
		feed.Items = append(feed.Items, out)
	}

	body, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json feed: %w", err)
	}
	return body, nil
}
