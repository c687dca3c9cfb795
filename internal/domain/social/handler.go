package social

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/response"
)

// Handler handles social graph HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates social handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Follow handles POST /users/{id}/follow
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	followers, following, err := h.service.Follow(r.Context(), middleware.GetUserID(r.Context()), targetID)
	if err != nil {
		h.writeGraphError(w, err)
		return
	}

	response.OK(w, map[string]int{
		"followers_count": followers,
		"following_count": following,
	})
}

// Unfollow handles POST /users/{id}/unfollow
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	followers, following, err := h.service.Unfollow(r.Context(), middleware.GetUserID(r.Context()), targetID)
	if err != nil {
		h.writeGraphError(w, err)
		return
	}

	response.OK(w, map[string]int{
		"followers_count": followers,
		"following_count": following,
	})
}

type listFn func(ctx context.Context, targetID, viewerID uuid.UUID, viewerIsAdmin bool, limit, offset int) ([]*ListItem, error)

// ListFollowers handles GET /users/{id}/followers
func (h *Handler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListFollowers)
}

// ListFollowing handles GET /users/{id}/following
func (h *Handler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListFollowing)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fn listFn) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	items, err := fn(r.Context(), targetID, middleware.GetUserID(r.Context()), middleware.IsAdmin(r.Context()), limit, offset)
	if err != nil {
		h.writeGraphError(w, err)
		return
	}
	if items == nil {
		items = []*ListItem{}
	}

	response.OK(w, items)
}

func (h *Handler) writeGraphError(w http.ResponseWriter, err error) {
	switch err {
	case ErrSelfFollowNotAllowed:
		response.BadRequest(w, "Users cannot follow themselves")
	case ErrTargetNotFound:
		response.NotFound(w, "User not found")
	default:
		response.InternalError(w)
	}
}
