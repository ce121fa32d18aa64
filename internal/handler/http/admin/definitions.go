package admin

import (
	"net/http"

	"feedgate/internal/handler/http/respond"
	"feedgate/internal/settings"
)

// DefinitionsHandler lists every stored custom feed definition.
type DefinitionsHandler struct{ Settings settings.Store }

// ServeHTTP returns all definitions, enabled or not.
//
// @Summary      List feed definitions
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DefinitionDTO
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "Server error"
// @Router       /admin/definitions [get]
func (h DefinitionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defs, err := h.Settings.Definitions()
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DefinitionDTO, 0, len(defs))
	for _, d := range defs {
		out = append(out, definitionDTO(d))
	}
	respond.JSON(w, http.StatusOK, out)
}
