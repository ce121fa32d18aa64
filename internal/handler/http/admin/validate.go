package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"feedgate/internal/domain/entity"
	"feedgate/internal/handler/http/respond"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/validate"
)

type validateRequest struct {
	// URL names an arbitrary feed to fetch and validate. Exactly one of URL
	// and Slug must be set.
	URL string `json:"url,omitempty" example:"https://example.com/feed/rss2/"`

	// Slug names a feed served by this engine; its public URL is derived
	// from the configured site URL.
	Slug string `json:"slug,omitempty" example:"news"`

	// Format hints the expected wire format. Defaults to rss2.
	Format string `json:"format,omitempty" example:"rss2"`
}

// ValidateHandler runs the structural validator against a feed on demand.
type ValidateHandler struct {
	Validator *validate.Validator
	Settings  settings.Store
}

// ServeHTTP validates the feed named by url or slug and returns the findings.
//
// @Summary      Validate a feed
// @Description  Fetches the feed and runs the structural conformance checks
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body validateRequest true "Feed to validate"
// @Success      200 {object} ValidationDTO
// @Failure      400 {string} string "Bad request"
// @Failure      401 {string} string "Authentication required"
// @Router       /admin/validate [post]
func (h ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.AppErrorOr(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "malformed request body", err))
		return
	}

	target := req.URL
	if target == "" {
		if req.Slug == "" {
			respond.Error(w, http.StatusBadRequest,
				errors.New("url or slug is required"))
			return
		}
		siteURL := strings.TrimRight(h.Settings.GetString(settings.KeySiteURL, ""), "/")
		if siteURL == "" {
			respond.Error(w, http.StatusBadRequest,
				errors.New("site URL is not configured"))
			return
		}
		target = siteURL + "/feed/" + req.Slug + "/"
	}

	hint := entity.FormatRSS2
	if req.Format != "" {
		if !entity.IsBuiltinFormat(req.Format) {
			respond.Error(w, http.StatusBadRequest,
				errors.New("format must be one of rss2, atom, json"))
			return
		}
		hint = entity.FeedFormat(req.Format)
	}

	result := h.Validator.ValidateURL(r.Context(), target, hint)
	respond.JSON(w, http.StatusOK, validationDTO(result))
}
