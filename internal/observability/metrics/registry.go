// Package metrics provides centralized Prometheus metrics for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track request patterns and performance.
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes.
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Feed delivery metrics.
var (
	// FeedRendersTotal counts full feed renders by format.
	FeedRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_renders_total",
			Help: "Total number of full feed renders",
		},
		[]string{"format"},
	)

	// FeedRenderDuration measures feed render duration in seconds by format.
	FeedRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_render_duration_seconds",
			Help:    "Feed render duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// ConditionalNotModifiedTotal counts 304 short-circuits by format.
	ConditionalNotModifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_conditional_not_modified_total",
			Help: "Total number of conditional requests answered with 304",
		},
		[]string{"format"},
	)

	// SelectionCacheHits counts selection cache hits by feed slug.
	SelectionCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_cache_hits_total",
			Help: "Total number of selection cache hits",
		},
		[]string{"feed"},
	)

	// SelectionCacheMisses counts selection cache misses by feed slug.
	SelectionCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_cache_misses_total",
			Help: "Total number of selection cache misses",
		},
		[]string{"feed"},
	)

	// SelectionInvalidationsTotal counts explicit cache invalidations by cause.
	SelectionInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_invalidations_total",
			Help: "Total number of explicit selection cache invalidations",
		},
		[]string{"cause"},
	)
)

// Validation metrics.
var (
	// ValidationRunsTotal counts validator runs by outcome (valid/invalid/error).
	ValidationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_validation_runs_total",
			Help: "Total number of feed validation runs",
		},
		[]string{"outcome"},
	)

	// ValidationDuration measures validation run duration in seconds.
	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_validation_duration_seconds",
			Help:    "Feed validation run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// ValidationAlertsTotal counts alert notifications sent by channel and status.
	ValidationAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_validation_alerts_total",
			Help: "Total number of validation alert notifications",
		},
		[]string{"channel", "status"},
	)
)
