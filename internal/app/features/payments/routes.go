// internal/app/features/payments/routes.go
package payments

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /payments. The payment intent stub
// is registered by the caller with ServeCreateIntent.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeCreate)
	r.Get("/{email}", h.ServeByEmail)

	return r
}
