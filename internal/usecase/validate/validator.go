// Package validate checks rendered feed documents against their format
// specifications. A validation run accumulates findings into tiered
// errors/warnings/info lists instead of stopping at the first problem, so a
// single run surfaces everything wrong with a feed.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"feedgate/internal/domain/entity"
	"feedgate/internal/observability/metrics"
)

// Performance thresholds for findings.
const (
	loadTimeWarnThreshold = 5 * time.Second
	loadTimeInfoThreshold = 2 * time.Second
	sizeWarnThreshold     = 1 << 20 // 1 MiB
)

// Validator runs structural validation against feed documents.
type Validator struct {
	Fetcher Fetcher
}

// NewValidator creates a Validator backed by the given fetcher.
func NewValidator(fetcher Fetcher) *Validator {
	return &Validator{Fetcher: fetcher}
}

// ValidateURL fetches url and validates the response. Transport failures are
// recorded as findings in the result rather than returned as errors, so batch
// sweeps can treat every feed uniformly.
func (v *Validator) ValidateURL(ctx context.Context, feedURL string, hint entity.FeedFormat) *entity.ValidationResult {
	start := time.Now()
	result := entity.NewValidationResult()

	fetched, err := v.Fetcher.Fetch(ctx, feedURL)
	if err != nil {
		result.AddError(fmt.Sprintf("fetch failed: %v", err))
		metrics.RecordValidationRun("error", time.Since(start))
		return result
	}

	result.Performance.LoadTime = fetched.LoadTime
	result.Performance.SizeBytes = int64(len(fetched.Body))
	result.Performance.ResponseCode = fetched.StatusCode

	// Transport check. A non-200 response is fatal for the structural
	// checks but performance and header findings still apply.
	if fetched.StatusCode != http.StatusOK {
		result.AddError(fmt.Sprintf("unexpected response status %d", fetched.StatusCode))
		v.checkPerformance(result, fetched)
		v.checkSecurityHeaders(result, fetched.Header)
		metrics.RecordValidationRun("invalid", time.Since(start))
		return result
	}

	v.checkContentType(result, fetched.Header.Get("Content-Type"), hint)
	v.checkBody(result, fetched.Body, hint)
	v.checkPerformance(result, fetched)
	v.checkSecurityHeaders(result, fetched.Header)

	metrics.RecordValidationRun(outcomeOf(result), time.Since(start))
	return result
}

func outcomeOf(result *entity.ValidationResult) string {
	if result.Valid {
		return "valid"
	}
	return "invalid"
}

// ValidateBytes validates an already-rendered document, as used by the
// on-publish check and the admin "run test" action. Transport and header
// checks are skipped since there was no HTTP exchange.
func (v *Validator) ValidateBytes(body []byte, hint entity.FeedFormat) *entity.ValidationResult {
	start := time.Now()
	result := entity.NewValidationResult()
	result.Performance.SizeBytes = int64(len(body))

	v.checkBody(result, body, hint)
	if len(body) > sizeWarnThreshold {
		result.AddWarning(fmt.Sprintf("payload is %d bytes, above the 1MB budget", len(body)))
	}

	metrics.RecordValidationRun(outcomeOf(result), time.Since(start))
	return result
}

// checkBody runs the format-independent and format-specific structural checks.
func (v *Validator) checkBody(result *entity.ValidationResult, body []byte, hint entity.FeedFormat) {
	if len(body) == 0 {
		result.AddError("response body is empty")
		return
	}

	if !utf8.Valid(body) {
		result.AddWarning("body is not valid UTF-8")
	}

	switch hint {
	case entity.FormatJSONFeed:
		v.checkJSONFeed(result, body)
	default:
		v.checkXMLFeed(result, body, hint)
	}

	v.checkInsecureURLs(result, body)
}

// checkContentType compares the observed MIME type against the set
// appropriate for the format.
func (v *Validator) checkContentType(result *entity.ValidationResult, header string, hint entity.FeedFormat) {
	if header == "" {
		result.AddWarning("response has no Content-Type header")
		return
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		result.AddWarning(fmt.Sprintf("unparseable Content-Type %q", header))
		return
	}

	accepted := map[entity.FeedFormat][]string{
		entity.FormatRSS2:     {"application/rss+xml", "application/xml", "text/xml"},
		entity.FormatAtom:     {"application/atom+xml", "application/xml", "text/xml"},
		entity.FormatJSONFeed: {"application/feed+json", "application/json"},
	}

	for _, want := range accepted[hint] {
		if mediaType == want {
			return
		}
	}
	result.AddWarning(fmt.Sprintf("Content-Type %q unusual for %s feeds", mediaType, hint))
}

// checkXMLFeed parses an RSS or Atom document and checks required structure.
func (v *Validator) checkXMLFeed(result *entity.ValidationResult, body []byte, hint entity.FeedFormat) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(body))
	if err != nil {
		result.AddError(fmt.Sprintf("document failed to parse: %v", err))
		return
	}

	switch hint {
	case entity.FormatRSS2:
		if feed.FeedType != "rss" {
			result.AddError(fmt.Sprintf("expected RSS root element, document parsed as %s", feed.FeedType))
		}
		v.checkRSSChannel(result, feed)
	case entity.FormatAtom:
		if feed.FeedType != "atom" {
			result.AddError(fmt.Sprintf("expected Atom feed element, document parsed as %s", feed.FeedType))
		}
		v.checkAtomFeed(result, feed)
	}

	v.checkNamespaceHints(result, body)
}

func (v *Validator) checkRSSChannel(result *entity.ValidationResult, feed *gofeed.Feed) {
	if feed.Title == "" {
		result.AddError("channel missing required <title> element")
	}
	if feed.Link == "" {
		result.AddError("channel missing required <link> element")
	}
	if feed.Description == "" {
		result.AddError("channel missing required <description> element")
	}
	if feed.Updated == "" && feed.Published == "" {
		result.AddWarning("channel missing recommended <lastBuildDate>")
	}

	for i, item := range feed.Items {
		if item.Title == "" && item.Description == "" {
			result.AddError(fmt.Sprintf("item %d has neither <title> nor <description>", i+1))
		}
		if item.GUID == "" {
			result.AddWarning(fmt.Sprintf("item %d missing <guid>", i+1))
		}
		v.checkEnclosures(result, i+1, item)
	}
	if len(feed.Items) == 0 {
		result.AddInfo("feed contains no items")
	}
}

func (v *Validator) checkAtomFeed(result *entity.ValidationResult, feed *gofeed.Feed) {
	if feed.Title == "" {
		result.AddError("feed missing required <title> element")
	}
	if feed.FeedLink == "" && feed.Link == "" {
		result.AddWarning("feed missing <link> element")
	}
	if feed.Updated == "" {
		result.AddError("feed missing required <updated> element")
	}

	for i, entry := range feed.Items {
		if entry.GUID == "" {
			result.AddError(fmt.Sprintf("entry %d missing required <id>", i+1))
		}
		if entry.Title == "" {
			result.AddError(fmt.Sprintf("entry %d missing required <title>", i+1))
		}
		if entry.Updated == "" && entry.Published == "" {
			result.AddError(fmt.Sprintf("entry %d missing required <updated>", i+1))
		}
	}
}

// checkEnclosures verifies enclosure URLs parse and lengths are non-zero.
// Zero-length enclosures are a common podcast authoring mistake and only
// warrant a warning.
func (v *Validator) checkEnclosures(result *entity.ValidationResult, itemNum int, item *gofeed.Item) {
	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if u, err := url.Parse(enc.URL); err != nil || u.Scheme == "" || u.Host == "" {
			result.AddError(fmt.Sprintf("item %d enclosure has invalid URL %q", itemNum, enc.URL))
		}
		length, err := strconv.ParseInt(enc.Length, 10, 64)
		if err != nil || length <= 0 {
			result.AddWarning(fmt.Sprintf("item %d enclosure has zero or missing length", itemNum))
		}
	}
}

// jsonFeedDoc is the subset of JSON Feed structure the validator inspects.
type jsonFeedDoc struct {
	Version string `json:"version"`
	Title   string `json:"title"`
	Items   *[]struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"items"`
}

func (v *Validator) checkJSONFeed(result *entity.ValidationResult, body []byte) {
	var doc jsonFeedDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		result.AddError(fmt.Sprintf("document is not valid JSON: %v", err))
		return
	}

	if doc.Version == "" {
		result.AddError("missing required version field")
	} else if !strings.HasPrefix(doc.Version, "https://jsonfeed.org/version/") {
		result.AddWarning(fmt.Sprintf("unrecognized version %q", doc.Version))
	}
	if doc.Title == "" {
		result.AddError("missing required title field")
	}
	if doc.Items == nil {
		result.AddError("missing required items array")
		return
	}
	for i, item := range *doc.Items {
		if item.ID == "" {
			result.AddError(fmt.Sprintf("item %d missing required id", i+1))
		}
	}
}

// checkNamespaceHints suggests commonly expected XML namespaces.
func (v *Validator) checkNamespaceHints(result *entity.ValidationResult, body []byte) {
	doc := string(body)
	hints := []struct {
		marker string
		note   string
	}{
		{"xmlns:content", "consider declaring the content namespace for full-body markup"},
		{"xmlns:dc", "consider declaring the dc namespace for author attribution"},
		{"xmlns:atom", "consider declaring the atom namespace for a rel=self link"},
	}
	for _, h := range hints {
		if !strings.Contains(doc, h.marker) {
			result.AddInfo(h.note)
		}
	}
}

func (v *Validator) checkPerformance(result *entity.ValidationResult, fetched *Fetched) {
	switch {
	case fetched.LoadTime > loadTimeWarnThreshold:
		result.AddWarning(fmt.Sprintf("load time %.1fs exceeds 5s budget", fetched.LoadTime.Seconds()))
	case fetched.LoadTime > loadTimeInfoThreshold:
		result.AddInfo(fmt.Sprintf("load time %.1fs above 2s target", fetched.LoadTime.Seconds()))
	}
	if len(fetched.Body) > sizeWarnThreshold {
		result.AddWarning(fmt.Sprintf("payload is %d bytes, above the 1MB budget", len(fetched.Body)))
	}
}

// checkSecurityHeaders reports recommended headers that are absent.
func (v *Validator) checkSecurityHeaders(result *entity.ValidationResult, header http.Header) {
	recommended := []string{
		"X-Content-Type-Options",
		"X-Frame-Options",
		"Strict-Transport-Security",
	}
	for _, name := range recommended {
		if header.Get(name) == "" {
			result.AddInfo(fmt.Sprintf("recommended header %s not set", name))
		}
	}
}

// wellKnownNamespaces are http:// identifiers that are not fetchable URLs.
var wellKnownNamespaces = []string{
	"http://purl.org/",
	"http://www.w3.org/",
	"http://search.yahoo.com/mrss/",
	"http://wellformedweb.org/",
}

// checkInsecureURLs flags plain-HTTP URLs embedded in the document.
// XML namespace identifiers use http:// by convention and are skipped.
func (v *Validator) checkInsecureURLs(result *entity.ValidationResult, body []byte) {
	doc := string(body)
	count := strings.Count(doc, "http://")
	for _, ns := range wellKnownNamespaces {
		count -= strings.Count(doc, ns)
	}
	if count > 0 {
		result.AddWarning(fmt.Sprintf("document contains %d non-HTTPS URL(s)", count))
	}
}
