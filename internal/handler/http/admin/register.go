package admin

import (
	"net/http"

	"feedgate/internal/handler/http/auth"
	"feedgate/internal/settings"
	"feedgate/internal/usecase/resolve"
	"feedgate/internal/usecase/selection"
	"feedgate/internal/usecase/validate"
)

// Register mounts the administrative endpoints on mux. Every route is
// wrapped in the JWT authorization middleware.
func Register(mux *http.ServeMux, resolver *resolve.Resolver, sel *selection.Service, validator *validate.Validator, store settings.Store) {
	mux.Handle("POST /admin/cache/invalidate", auth.Authz(InvalidateAllHandler{Selection: sel, Settings: store}))
	mux.Handle("POST /admin/cache/invalidate/{slug}", auth.Authz(InvalidateFeedHandler{Selection: sel}))
	mux.Handle("POST /admin/validate", auth.Authz(ValidateHandler{Validator: validator, Settings: store}))
	mux.Handle("GET /admin/preview/{slug}", auth.Authz(PreviewHandler{Resolver: resolver, Selection: sel, Settings: store}))
	mux.Handle("GET /admin/definitions", auth.Authz(DefinitionsHandler{Settings: store}))
}
