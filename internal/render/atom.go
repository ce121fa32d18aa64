package render

import (
	"encoding/xml"
	"fmt"
	"time"

	"feedgate/internal/domain/entity"
)

// atomFeed is the root element of an Atom feed.
type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	XMLNS    string      `xml:"xmlns,attr"`
	ID       string      `xml:"id"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	Updated  string      `xml:"updated"`
	Links    []atomLink  `xml:"link"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
	Href string `xml:"href,attr"`
}

type atomEntry struct {
	ID      string       `xml:"id"`
	Title   string       `xml:"title"`
	Updated string       `xml:"updated"`
	Link    *atomLink    `xml:"link,omitempty"`
	Author  *atomPerson  `xml:"author,omitempty"`
	Content *atomContent `xml:"content,omitempty"`
	Summary *atomContent `xml:"summary,omitempty"`
}

type atomPerson struct {
	Name string `xml:"name"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// Atom renders items as an Atom document. The feed-level updated timestamp is
// the maximum across entry timestamps, never the render-time clock.
func Atom(site Site, def entity.FeedDefinition, items []*entity.ContentItem) ([]byte, error) {
	feedURL := site.FeedURL(def.Slug)

	feed := atomFeed{
		XMLNS:    "http://www.w3.org/2005/Atom",
		ID:       feedURL,
		Title:    channelTitle(site, def),
		Subtitle: channelDescription(site, def),
		Links: []atomLink{
			{Rel: "self", Type: "application/atom+xml", Href: feedURL},
			{Rel: "alternate", Type: "text/html", Href: site.URL},
		},
	}

	updated := lastTouched(items)
	if updated.IsZero() {
		updated = time.Unix(0, 0)
	}
	feed.Updated = updated.UTC().Format(time.RFC3339)

	feed.Entries = make([]atomEntry, 0, len(items))
	for _, item := range items {
		entryUpdated := item.ModifiedAt
		if entryUpdated.IsZero() {
			entryUpdated = item.PublishedAt
		}

		entry := atomEntry{
			ID:      itemGUID(site, item),
			Title:   item.Title,
			Updated: entryUpdated.UTC().Format(time.RFC3339),
			Link:    &atomLink{Rel: "alternate", Type: "text/html", Href: item.Permalink},
		}
		if item.AuthorName != "" {
			entry.Author = &atomPerson{Name: item.AuthorName}
		}
		if item.BodyHTML != "" {
			entry.Content = &atomContent{Type: "html", Body: item.BodyHTML}
		} else if item.Excerpt != "" {
			entry.Summary = &atomContent{Type: "html", Body: item.Excerpt}
		}
		feed.Entries = append(feed.Entries, entry)
	}

	body, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal atom: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
