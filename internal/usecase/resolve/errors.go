package resolve

import "errors"

// ErrFeedNotFound indicates the request path names no enabled feed: an
// unknown slug, a disabled definition, or a built-in format whose capability
// flag is off. Callers map it to HTTP 404.
var ErrFeedNotFound = errors.New("feed not found")
