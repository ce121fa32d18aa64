package entity

import "time"

// FreshnessToken carries the cache-validation metadata computed for one feed
// response. Tokens are derived per request and never persisted; the ETag must
// change if and only if LastModified changes for a fixed site and format.
type FreshnessToken struct {
	LastModified time.Time
	ETag         string
}

// QuotedETag returns the token's ETag in the quoted form HTTP requires.
func (t FreshnessToken) QuotedETag() string {
	return `"` + t.ETag + `"`
}
