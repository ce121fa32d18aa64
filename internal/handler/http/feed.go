// Package http provides the HTTP surface of the feed delivery engine:
// the public feed endpoint, cache invalidation hooks, health checks,
// metrics and the middleware stack.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"feedgate/internal/observability/logging"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/render"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/deliver"
	"feedgate/internal/usecase/resolve"
	"feedgate/internal/usecase/selection"
)

// FeedHandler serves GET /feed/{feed}/ for built-in formats and custom slugs.
type FeedHandler struct {
	Resolver   *resolve.Resolver
	Negotiator *deliver.Negotiator
	Selection  *selection.Service
	Settings   settings.Store
}

// NewFeedHandler wires the delivery pipeline behind one handler.
func NewFeedHandler(resolver *resolve.Resolver, negotiator *deliver.Negotiator, sel *selection.Service, store settings.Store) *FeedHandler {
	return &FeedHandler{
		Resolver:   resolver,
		Negotiator: negotiator,
		Selection:  sel,
		Settings:   store,
	}
}

// ServeHTTP resolves, negotiates, and either short-circuits with 304 or
// selects, renders and writes the feed. The 304 decision is made before any
// selection or render work.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	name := r.PathValue("feed")
	resolved, err := h.Resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, resolve.ErrFeedNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("feed resolution failed", slog.String("feed", name), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	decision, err := h.Negotiator.Negotiate(ctx, resolved.Definition, resolved.Format, deliver.ConditionalHeaders{
		IfModifiedSince: r.Header.Get("If-Modified-Since"),
		IfNoneMatch:     r.Header.Get("If-None-Match"),
		AcceptEncoding:  r.Header.Get("Accept-Encoding"),
	})
	if err != nil {
		logger.Error("freshness negotiation failed", slog.String("feed", name), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeCommonHeaders(w, decision)

	if decision.NotModified {
		metrics.RecordNotModified(string(resolved.Format))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	items, err := h.Selection.GetOrBuild(ctx, resolved.Definition)
	if err != nil {
		logger.Error("selection query failed", slog.String("feed", name), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	site := render.Site{
		URL:         h.Settings.GetString(settings.KeySiteURL, ""),
		Title:       h.Settings.GetString(settings.KeySiteTitle, ""),
		Description: h.Settings.GetString(settings.KeySiteDescription, ""),
	}

	start := time.Now()
	body, err := render.Feed(resolved.Format, site, resolved.Definition, items)
	if err != nil {
		logger.Error("feed render failed", slog.String("feed", name), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	metrics.RecordFeedRender(string(resolved.Format), time.Since(start))

	w.Header().Set("Content-Type", resolved.Format.ContentType())

	if decision.Gzip {
		gzw := newGzipResponseWriter(w)
		defer func() { _ = gzw.Close() }()
		gzw.WriteHeader(http.StatusOK)
		if _, err := gzw.Write(body); err != nil {
			logger.Warn("response write failed", slog.String("feed", name), slog.Any("error", err))
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Warn("response write failed", slog.String("feed", name), slog.Any("error", err))
	}
}

// writeCommonHeaders emits the headers shared by 200 and 304 responses:
// cache policy, freshness validators, baseline security headers and
// permissive CORS for feed consumption.
func (h *FeedHandler) writeCommonHeaders(w http.ResponseWriter, decision deliver.Decision) {
	header := w.Header()

	header.Set("Cache-Control", "public, max-age="+strconv.Itoa(decision.MaxAge))
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("X-Frame-Options", "SAMEORIGIN")
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")

	if decision.Conditional {
		if !decision.Freshness.LastModified.IsZero() {
			header.Set("Last-Modified", decision.Freshness.LastModified.UTC().Format(http.TimeFormat))
		}
		if decision.Freshness.ETag != "" {
			header.Set("ETag", decision.Freshness.QuotedETag())
		}
	}
}
