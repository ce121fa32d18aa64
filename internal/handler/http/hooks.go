package http

import (
	"log/slog"
	"net/http"

	"feedgate/internal/handler/http/respond"
	"feedgate/internal/observability/logging"
	"feedgate/internal/observability/metrics"
	"feedgate/internal/usecase/selection"
)

// HookHandler receives CMS-side change notifications and flushes the
// selection cache so the next feed request rebuilds from fresh content.
type HookHandler struct {
	Selection *selection.Service
}

// NewHookHandler returns a handler for content change hooks.
func NewHookHandler(sel *selection.Service) *HookHandler {
	return &HookHandler{Selection: sel}
}

// ContentChanged godoc
//
//	@Summary	Invalidate cached selections after a content change
//	@Tags		hooks
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/hooks/content-changed [post]
func (h *HookHandler) ContentChanged(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), slog.Default())

	h.Selection.InvalidateAll()
	metrics.RecordSelectionInvalidation("content")

	logger.Info("selection cache invalidated by content change hook")
	respond.JSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}
