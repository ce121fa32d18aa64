package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedgate/internal/domain/entity"
)

func testSite() Site {
	return Site{
		URL:         "https://example.com",
		Title:       "Example Site",
		Description: "News and notes",
	}
}

func testItems(n int) []*entity.ContentItem {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	items := make([]*entity.ContentItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &entity.ContentItem{
			ID:          int64(100 + i),
			ContentType: "post",
			Title:       fmt.Sprintf("Post %d", i+1),
			Permalink:   fmt.Sprintf("https://example.com/posts/%d/", i+1),
			PublishedAt: base.Add(-time.Duration(i) * 24 * time.Hour),
			ModifiedAt:  base.Add(-time.Duration(i) * 12 * time.Hour),
			AuthorName:  "alice",
			Excerpt:     fmt.Sprintf("Summary of post %d", i+1),
			BodyHTML:    fmt.Sprintf("<p>Body of <b>post %d</b></p>", i+1),
			Categories:  []string{"general"},
			Tags:        []string{"go"},
		})
	}
	return items
}

func TestRSS2FiveItems(t *testing.T) {
	site := testSite()
	def := entity.FeedDefinition{Slug: "main", Title: "Main Feed"}
	items := testItems(5)

	out, err := RSS2(site, def, items)
	require.NoError(t, err)
	doc := string(out)

	assert.Equal(t, 5, strings.Count(doc, "<item>"))
	assert.Contains(t, doc, `version="2.0"`)
	assert.Contains(t, doc, `isPermaLink="false"`)
	assert.Contains(t, doc, "https://example.com/?feed_item=100")
	assert.Contains(t, doc, "<title>Main Feed</title>")
	assert.Contains(t, doc, `href="https://example.com/feed/main/"`)

	// lastBuildDate reflects the newest modification across items.
	assert.Contains(t, doc, "<lastBuildDate>Tue, 10 Mar 2026 08:00:00 +0000</lastBuildDate>")
	assert.Contains(t, doc, "<pubDate>Tue, 10 Mar 2026 08:00:00 +0000</pubDate>")
}

func TestRSS2CDATAEscape(t *testing.T) {
	items := testItems(1)
	items[0].BodyHTML = "before ]]> after"

	out, err := RSS2(testSite(), entity.FeedDefinition{Slug: "main"}, items)
	require.NoError(t, err)

	assert.Contains(t, string(out), "before ]]&gt; after")
	assert.NotContains(t, string(out), "before ]]> after")
}

func TestRenderIdempotent(t *testing.T) {
	site := testSite()
	def := entity.FeedDefinition{Slug: "main", Title: "Main Feed"}
	items := testItems(3)

	for _, format := range []entity.FeedFormat{entity.FormatRSS2, entity.FormatAtom, entity.FormatJSONFeed} {
		first, err := Feed(format, site, def, items)
		require.NoError(t, err, format)
		second, err := Feed(format, site, def, items)
		require.NoError(t, err, format)
		assert.True(t, bytes.Equal(first, second), "format %s not idempotent", format)
	}
}

func TestAtomUpdatedFromItems(t *testing.T) {
	site := testSite()
	def := entity.FeedDefinition{Slug: "atomfeed", Title: "Atom Feed"}
	items := testItems(2)

	out, err := Atom(site, def, items)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `xmlns="http://www.w3.org/2005/Atom"`)
	assert.Contains(t, doc, "<id>https://example.com/feed/atomfeed/</id>")
	assert.Contains(t, doc, "<updated>2026-03-10T08:00:00Z</updated>")
	assert.Contains(t, doc, "<id>https://example.com/?feed_item=100</id>")
	assert.Contains(t, doc, "<name>alice</name>")
	assert.Equal(t, 2, strings.Count(doc, "<entry>"))
}

func TestAtomEmptySelection(t *testing.T) {
	out, err := Atom(testSite(), entity.FeedDefinition{Slug: "empty"}, nil)
	require.NoError(t, err)

	// A zero-item feed still carries a valid updated element.
	var feed struct {
		Updated string `xml:"updated"`
		Entries []struct{} `xml:"entry"`
	}
	require.NoError(t, xml.Unmarshal(out, &feed))
	assert.Equal(t, "1970-01-01T00:00:00Z", feed.Updated)
	assert.Empty(t, feed.Entries)
}

func TestJSONFeedRoundTrip(t *testing.T) {
	site := testSite()
	def := entity.FeedDefinition{Slug: "json", Title: "JSON Feed"}
	items := testItems(4)
	items[0].Enclosures = []entity.Enclosure{
		{URL: "https://example.com/audio.mp3", MIMEType: "audio/mpeg", LengthBytes: 1024},
	}

	out, err := JSONFeed(site, def, items)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "https://jsonfeed.org/version/1.1", parsed["version"])
	assert.Equal(t, "JSON Feed", parsed["title"])
	assert.Equal(t, "https://example.com/feed/json/", parsed["feed_url"])

	list, ok := parsed["items"].([]any)
	require.True(t, ok)
	require.Len(t, list, 4)

	first, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/?feed_item=100", first["id"])
	assert.Equal(t, "<p>Body of <b>post 1</b></p>", first["content_html"])
	assert.Equal(t, "Body of post 1", first["content_text"])
	assert.Equal(t, "2026-03-10T08:00:00Z", first["date_published"])

	attachments, ok := first["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
}

func TestJSONFeedTextOnlyItem(t *testing.T) {
	items := testItems(1)
	items[0].BodyHTML = ""
	items[0].Excerpt = "<em>plain</em> excerpt"

	out, err := JSONFeed(testSite(), entity.FeedDefinition{Slug: "json"}, items)
	require.NoError(t, err)

	var parsed jsonFeed
	require.NoError(t, json.Unmarshal(out, &parsed))
	require.Len(t, parsed.Items, 1)
	assert.Empty(t, parsed.Items[0].ContentHTML)
	assert.Equal(t, "plain excerpt", parsed.Items[0].ContentText)
}

func TestFeedDispatcherUnknownFormat(t *testing.T) {
	_, err := Feed(entity.FeedFormat("opml"), testSite(), entity.FeedDefinition{Slug: "x"}, nil)
	assert.Error(t, err)
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"tags stripped", "<p>hello <b>world</b></p>", "hello world"},
		{"whitespace collapsed", "<p>a</p>\n\n  <p>b    c</p>", "a b c"},
		{"entities decoded", "fish &amp; chips", "fish & chips"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.in))
		})
	}
}

func TestSiteFeedURL(t *testing.T) {
	s := Site{URL: "https://example.com/"}
	assert.Equal(t, "https://example.com/feed/main/", s.FeedURL("main"))
}
