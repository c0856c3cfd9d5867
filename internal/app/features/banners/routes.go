// internal/app/features/banners/routes.go
package banners

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /banners.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeCreate)
	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.ServePatch)
	r.Put("/{id}", h.ServeReplace)
	r.Delete("/{id}", h.ServeDelete)

	return r
}
