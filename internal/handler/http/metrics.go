package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feedgate/internal/handler/http/responsewriter"
	"feedgate/internal/observability/metrics"
)

// normalizePath collapses per-feed path segments to keep metric label
// cardinality bounded. /feed/news/ and /feed/rss2/ both become /feed/:feed.
func normalizePath(path string) string {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) >= 2 {
		switch parts[0] {
		case "feed":
			return "/feed/:feed"
		case "admin":
			if len(parts) == 4 && parts[1] == "cache" && parts[2] == "invalidate" {
				return "/admin/cache/invalidate/:slug"
			}
			if len(parts) == 3 && parts[1] == "preview" {
				return "/admin/preview/:slug"
			}
		}
	}
	return "/" + trimmed
}

// MetricsMiddleware records HTTP request metrics: count, duration and
// response size, labeled by method, normalized path and status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		normalized := normalizePath(r.URL.Path)

		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(wrapped.StatusCode())
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, normalized, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, normalized, status).Observe(duration)
		metrics.HTTPResponseSize.WithLabelValues(r.Method, normalized).Observe(float64(wrapped.BytesWritten()))
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
