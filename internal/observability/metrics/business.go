package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecordFeedRender records a completed full render for the given format.
func RecordFeedRender(format string, duration time.Duration) {
	FeedRendersTotal.WithLabelValues(format).Inc()
	FeedRenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordNotModified records a conditional request answered with 304.
func RecordNotModified(format string) {
	ConditionalNotModifiedTotal.WithLabelValues(format).Inc()
}

// RecordSelectionCacheHit records a selection served from cache.
func RecordSelectionCacheHit(feed string) {
	SelectionCacheHits.WithLabelValues(feed).Inc()
}

// RecordSelectionCacheMiss records a selection built from the repository.
func RecordSelectionCacheMiss(feed string) {
	SelectionCacheMisses.WithLabelValues(feed).Inc()
}

// RecordSelectionInvalidation records an explicit cache invalidation.
// Cause is "content" for change hooks, "admin" for operator calls and
// "preview" for the eviction a preview render forces.
func RecordSelectionInvalidation(cause string) {
	SelectionInvalidationsTotal.WithLabelValues(cause).Inc()
}

// RegisterSelectionCacheSize exposes the live selection cache entry count as
// a gauge, sampled at scrape time. Call once at startup.
func RegisterSelectionCacheSize(length func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "selection_cache_entries",
		Help: "Number of cached selections currently held",
	}, func() float64 { return float64(length()) })
}

// RecordValidationRun records a validator run and its duration.
// Outcome should be "valid", "invalid" or "error".
func RecordValidationRun(outcome string, duration time.Duration) {
	ValidationRunsTotal.WithLabelValues(outcome).Inc()
	ValidationDuration.Observe(duration.Seconds())
}

// RecordValidationAlert records an alert notification attempt.
func RecordValidationAlert(channel string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ValidationAlertsTotal.WithLabelValues(channel, status).Inc()
}
