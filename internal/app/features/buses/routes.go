// internal/app/features/buses/routes.go
package buses

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /allbus. The search and add
// endpoints sit outside that prefix and are registered by the caller with
// ServeSearch and ServeAdd.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Delete("/{id}", h.ServeDelete)

	return r
}
