package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns direct admin action routes
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Get("/users", h.ListUsers)
	r.Put("/users/{id}/role", h.UpdateRole)
	r.Put("/users/{id}/suspend", h.Suspend)
	r.Delete("/users/{id}", h.DeleteUser)
	r.Put("/posts/{id}/hidden", h.SetPostHidden)
	r.Delete("/posts/{id}", h.DeletePost)

	return r
}
