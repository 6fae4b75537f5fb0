package router

import (
	"net/http"

	"github.com/shandysiswandi/artmatch/internal/pkg/config"
)

// middlewareMaintenance answers 503 for the route paths listed in
// app.maintenance.endpoints, or for every route when app.maintenance.all is set.
func middlewareMaintenance(cfg config.Config) Middleware {
	var all bool
	endpoints := make(map[string]struct{})
	if cfg != nil {
		all = cfg.GetBool("app.maintenance.all")
		for _, endpoint := range cfg.GetArray("app.maintenance.endpoints") {
			endpoints[endpoint] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			if _, blocked := endpoints[route]; (blocked || all) && route != "/health" {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
