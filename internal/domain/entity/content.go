package entity

import "time"

// ContentItem is a read-only projection of one publishable item from the
// content repository. The engine never mutates items; it only filters,
// orders and renders them.
type ContentItem struct {
	ID          int64
	ContentType string
	Title       string
	Permalink   string
	PublishedAt time.Time
	ModifiedAt  time.Time
	AuthorName  string
	Excerpt     string
	BodyHTML    string
	Categories  []string
	Tags        []string
	Enclosures  []Enclosure

	// CommentCount backs the commentCount ordering. Zero when the
	// repository does not track comments for the item's type.
	CommentCount int
}

// Enclosure references a feed-item attachment (audio, video, image).
type Enclosure struct {
	URL         string
	MIMEType    string
	LengthBytes int64
}
