// internal/app/features/coupons/routes.go
package coupons

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /coupons.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeCreate)
	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.ServePatch)
	r.Delete("/{id}", h.ServeDelete)

	return r
}
