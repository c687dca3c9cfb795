package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns notification routes, all recipient-scoped
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/unread-count", h.UnreadCount)
	r.Post("/{id}/read", h.MarkRead)
	r.Post("/read-all", h.MarkAllRead)
	r.Delete("/{id}", h.Delete)
	r.Delete("/", h.DeleteAll)

	return r
}
