// internal/app/features/blogs/routes.go
package blogs

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /blogs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	return r
}
