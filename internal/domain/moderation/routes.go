package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns report routes. Filing a report needs authentication only;
// the review side is admin-only.
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.CreateReport)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.ListReports)
		r.Get("/stats", h.Stats)
		r.Get("/{id}", h.GetReport)
		r.Put("/{id}", h.UpdateReport)
	})

	return r
}
