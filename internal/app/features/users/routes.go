// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /users. PUT /user is registered
// separately by the caller since it lives outside this prefix.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/register", h.ServeRegister)

	r.Get("/uid/{uid}", h.ServeByUID)
	r.Patch("/uid/{uid}", h.ServePatchByUID)
	r.Get("/id/{id}", h.ServeByID)
	r.Get("/check/{email}", h.ServeCheck)

	r.Get("/{email}", h.ServeByEmail)
	r.Patch("/{email}", h.ServePatchRole)

	return r
}
