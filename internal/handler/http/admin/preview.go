package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"feedgate/internal/handler/http/respond"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/render"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/resolve"
	"feedgate/internal/usecase/selection"
)

// PreviewHandler renders a feed without cache headers or the selection
// cache, so editors can see exactly what the next rebuild will produce.
type PreviewHandler struct {
	Resolver  *resolve.Resolver
	Selection *selection.Service
	Settings  settings.Store
}

// ServeHTTP renders the feed named by the slug in the path.
//
// @Summary      Preview a rendered feed
// @Description  Renders the feed from a fresh selection, bypassing the cache
// @Tags         admin
// @Security     BearerAuth
// @Produce      plain
// @Param        slug path string true "Feed slug or built-in format"
// @Success      200 {string} string "Rendered feed document"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "Unknown feed"
// @Router       /admin/preview/{slug} [get]
func (h PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	resolved, err := h.Resolver.Resolve(slug)
	if err != nil {
		if errors.Is(err, resolve.ErrFeedNotFound) {
			http.NotFound(w, r)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// A preview must show current content, so evict first.
	h.Selection.Invalidate(resolved.Definition.Slug)
	metrics.RecordSelectionInvalidation("preview")

	items, err := h.Selection.GetOrBuild(r.Context(), resolved.Definition)
	if err != nil {
		slog.Default().Error("preview selection failed",
			slog.String("feed", slug), slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	site := render.Site{
		URL:         h.Settings.GetString(settings.KeySiteURL, ""),
		Title:       h.Settings.GetString(settings.KeySiteTitle, ""),
		Description: h.Settings.GetString(settings.KeySiteDescription, ""),
	}

	body, err := render.Feed(resolved.Format, site, resolved.Definition, items)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// No freshness validators here; previews are never cacheable.
	w.Header().Set("Content-Type", resolved.Format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
