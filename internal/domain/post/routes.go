package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns post routes. The public feed and single-post reads do not
// require authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/mine", h.ListMine)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/media", h.UploadMedia)
	})

	r.Get("/{id}", h.Get)

	return r
}
