package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns admin-only audit routes
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Get("/", h.List)
	r.Get("/stats", h.Stats)

	return r
}
