package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"feedgate/internal/handler/http/auth"
	"feedgate/internal/handler/http/respond"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/selection"
)

// InvalidateAllHandler flushes every cached selection. The administrative
// layer calls it after editing configuration, so the handler also reloads
// the settings store; routing and capability flags pick up the edit along
// with the cache flush.
type InvalidateAllHandler struct {
	Selection *selection.Service
	Settings  settings.Store
}

// ServeHTTP reloads configuration and invalidates all cached feed selections.
//
// @Summary      Reload configuration and invalidate all cached selections
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Configuration reload failed"
// @Router       /admin/cache/invalidate [post]
func (h InvalidateAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if reloader, ok := h.Settings.(settings.Reloader); ok {
		if err := reloader.Reload(); err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	h.Selection.InvalidateAll()
	metrics.RecordSelectionInvalidation("admin")
	slog.Info("configuration reloaded, all selections invalidated",
		slog.String("by", auth.UserFromContext(r.Context())))
	respond.JSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

// InvalidateFeedHandler flushes the cached selection of one feed.
type InvalidateFeedHandler struct{ Selection *selection.Service }

// ServeHTTP invalidates the cached selection for the slug in the path.
//
// @Summary      Invalidate one feed's cached selection
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        slug path string true "Feed slug or built-in format"
// @Success      200 {object} map[string]string
// @Failure      400 {string} string "Missing slug"
// @Failure      401 {string} string "Authentication required"
// @Router       /admin/cache/invalidate/{slug} [post]
func (h InvalidateFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("slug is required"))
		return
	}
	h.Selection.Invalidate(slug)
	metrics.RecordSelectionInvalidation("admin")
	slog.Info("selection invalidated",
		slog.String("feed", slug),
		slog.String("by", auth.UserFromContext(r.Context())))
	respond.JSON(w, http.StatusOK, map[string]string{"status": "invalidated", "slug": slug})
}
