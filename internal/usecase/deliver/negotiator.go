// Package deliver implements HTTP cache negotiation for feed responses:
// freshness metadata (ETag / Last-Modified), the 304 short-circuit decision
// and the compression decision. The decision is made before any selection or
// render work so conditional hits stay cheap.
package deliver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"feedgate/internal/domain/entity"
	"feedgate/internal/repository"
	"feedgate/internal/settings"
)

// ConditionalHeaders carries the request headers relevant to negotiation.
type ConditionalHeaders struct {
	IfModifiedSince string
	IfNoneMatch     string
	AcceptEncoding  string
}

// Decision is the outcome of one negotiation.
type Decision struct {
	// NotModified short-circuits the request with a bodyless 304.
	NotModified bool

	// Freshness holds the validators to emit on full responses (and on the
	// 304 itself). Zero when conditional negotiation is disabled.
	Freshness entity.FreshnessToken

	// Conditional reports whether the conditional-requests capability was
	// on for this negotiation; validators are only emitted when it is.
	Conditional bool

	// Gzip is true when the response body should be gzip-compressed.
	Gzip bool

	// MaxAge is the Cache-Control max-age in seconds.
	MaxAge int
}

// Negotiator computes freshness and encoding decisions for feed requests.
type Negotiator struct {
	Settings settings.Store
	Repo     repository.ContentRepository
}

// NewNegotiator creates a negotiator over the given capabilities.
func NewNegotiator(store settings.Store, repo repository.ContentRepository) *Negotiator {
	return &Negotiator{Settings: store, Repo: repo}
}

// Negotiate decides between a 304 short-circuit and a full render for one
// feed request.
//
// lastModified is the cheap sitewide bound: the most recent modification
// across the definition's eligible content types, regardless of whether the
// modified item matches the definition's narrower filters. A change to an
// unrelated item of an eligible type therefore refreshes the validators of a
// filtered feed that did not itself change.
//
// The conditional match is an inclusive OR: a request is answered with 304
// when its If-Modified-Since is at or after lastModified, or when its
// If-None-Match equals the current ETag (quoted or bare). This diverges from
// strict RFC 9110 precedence on purpose.
func (n *Negotiator) Negotiate(ctx context.Context, def entity.FeedDefinition, format entity.FeedFormat, hdr ConditionalHeaders) (Decision, error) {
	d := Decision{
		MaxAge: n.Settings.GetInt(settings.KeyCacheMaxAge, settings.DefaultCacheMaxAge),
		Gzip:   n.Settings.GetBool(settings.KeyGzipEnabled, true) && acceptsGzip(hdr.AcceptEncoding),
	}

	if !n.Settings.GetBool(settings.KeyConditionalEnabled, true) {
		return d, nil
	}
	d.Conditional = true

	lastModified, err := n.Repo.LastModified(ctx, def.ContentTypes)
	if err != nil {
		return Decision{}, fmt.Errorf("freshness lookup for %q: %w", def.Slug, err)
	}
	// HTTP validators have one-second resolution.
	lastModified = lastModified.UTC().Truncate(time.Second)

	siteURL := n.Settings.GetString(settings.KeySiteURL, "")
	d.Freshness = entity.FreshnessToken{
		LastModified: lastModified,
		ETag:         ETag(siteURL, format, lastModified),
	}

	if matchesModifiedSince(hdr.IfModifiedSince, lastModified) || matchesETag(hdr.IfNoneMatch, d.Freshness.ETag) {
		d.NotModified = true
	}
	return d, nil
}

// ETag derives the deterministic entity tag for a site, format and
// last-modified instant. It is recomputed per request and never stored; for a
// fixed site and format it changes if and only if lastModified changes.
func ETag(siteURL string, format entity.FeedFormat, lastModified time.Time) string {
	seed := fmt.Sprintf("%s|%s|%d", siteURL, format, lastModified.UTC().Unix())
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:16])
}

func matchesModifiedSince(header string, lastModified time.Time) bool {
	if header == "" || lastModified.IsZero() {
		return false
	}
	since, err := http.ParseTime(header)
	if err != nil {
		return false
	}
	return !lastModified.After(since)
}

func matchesETag(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	candidate := strings.TrimSpace(header)
	candidate = strings.TrimPrefix(candidate, "W/")
	candidate = strings.Trim(candidate, `"`)
	return candidate == etag
}

func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		enc := strings.TrimSpace(part)
		if enc == "gzip" || strings.HasPrefix(enc, "gzip;") {
			return true
		}
	}
	return false
}
