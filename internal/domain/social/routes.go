package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns social graph routes mounted under /users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/{id}/follow", h.Follow)
	r.Post("/{id}/unfollow", h.Unfollow)
	r.Get("/{id}/followers", h.ListFollowers)
	r.Get("/{id}/following", h.ListFollowing)

	return r
}
