package render

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"feedgate/internal/domain/entity"
)

// rssDoc is the root element of an RSS 2.0 feed.
type rssDoc struct {
	XMLName      xml.Name   `xml:"rss"`
	Version      string     `xml:"version,attr"`
	ContentXMLNS string     `xml:"xmlns:content,attr"`
	DCXMLNS      string     `xml:"xmlns:dc,attr"`
	AtomXMLNS    string     `xml:"xmlns:atom,attr"`
	Channel      rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	Language      string     `xml:"language,omitempty"`
	LastBuildDate string     `xml:"lastBuildDate,omitempty"`
	SelfLink      rssSelf    `xml:"atom:link"`
	Items         []rssItem  `xml:"item"`
}

// rssSelf is the self-referencing atom:link recommended for RSS channels.
type rssSelf struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string          `xml:"title"`
	Link        string          `xml:"link"`
	GUID        rssGUID         `xml:"guid"`
	PubDate     string          `xml:"pubDate"`
	Author      string          `xml:"dc:creator,omitempty"`
	Categories  []string        `xml:"category,omitempty"`
	Description *cdata          `xml:"description,omitempty"`
	Content     *cdata          `xml:"content:encoded,omitempty"`
	Enclosures  []rssEnclosure  `xml:"enclosure,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// cdata wraps free text in a CDATA section so HTML bodies pass through
// without entity-escaping surprises.
type cdata struct {
	Text string `xml:",cdata"`
}

// wrapCDATA builds a CDATA payload. A literal "]]>" inside the text would
// terminate the section early, so it is escaped to "]]&gt;" first.
func wrapCDATA(s string) *cdata {
	if s == "" {
		return nil
	}
	return &cdata{Text: strings.ReplaceAll(s, "]]>", "]]&gt;")}
}

// RSS2 renders items as an RSS 2.0 document.
func RSS2(site Site, def entity.FeedDefinition, items []*entity.ContentItem) ([]byte, error) {
	channel := rssChannel{
		Title:       channelTitle(site, def),
		Link:        site.URL,
		Description: channelDescription(site, def),
		SelfLink: rssSelf{
			Href: site.FeedURL(def.Slug),
			Rel:  "self",
			Type: "application/rss+xml",
		},
	}

	if touched := lastTouched(items); !touched.IsZero() {
		channel.LastBuildDate = touched.UTC().Format(time.RFC1123Z)
	}

	channel.Items = make([]rssItem, 0, len(items))
	for _, item := range items {
		out := rssItem{
			Title:   item.Title,
			Link:    item.Permalink,
			GUID:    rssGUID{IsPermaLink: false, Value: itemGUID(site, item)},
			PubDate: item.PublishedAt.UTC().Format(time.RFC1123Z),
			Author:  item.AuthorName,
		}
		out.Categories = append(out.Categories, item.Categories...)
		out.Categories = append(out.Categories, item.Tags...)

		if item.Excerpt != "" {
			out.Description = wrapCDATA(item.Excerpt)
		}
		out.Content = wrapCDATA(item.BodyHTML)

		for _, enc := range item.Enclosures {
			out.Enclosures = append(out.Enclosures, rssEnclosure{
				URL:    enc.URL,
				Type:   enc.MIMEType,
				Length: enc.LengthBytes,
			})
		}
		channel.Items = append(channel.Items, out)
	}

	doc := rssDoc{
		Version:      "2.0",
		ContentXMLNS: "http://purl.org/rss/1.0/modules/content/",
		DCXMLNS:      "http://purl.org/dc/elements/1.1/",
		AtomXMLNS:    "http://www.w3.org/2005/Atom",
		Channel:      channel,
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss2: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
