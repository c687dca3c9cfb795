package comment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/response"
	"github.com/feedline/feedline-api/internal/pkg/validator"
)

// Handler handles comment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /posts/{id}/comments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), postID, &req, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch err {
		case post.ErrPostNotFound, post.ErrNotVisible:
			response.NotFound(w, "Post not found")
		case ErrParentNotFound:
			response.NotFound(w, "Parent comment not found")
		case ErrParentMismatch:
			response.BadRequest(w, "Parent comment belongs to another post")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, c)
}

// ListByPost handles GET /posts/{id}/comments
func (h *Handler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
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

	items, total, err := h.service.ListByPost(r.Context(), middleware.GetUserID(r.Context()), postID, middleware.IsAdmin(r.Context()), limit, offset)
	if err != nil {
		switch err {
		case post.ErrPostNotFound, post.ErrNotVisible:
			response.NotFound(w, "Post not found")
		default:
			response.InternalError(w)
		}
		return
	}
	if items == nil {
		items = []*ListItem{}
	}

	response.WithMeta(w, items, response.Meta{Total: total, Limit: limit})
}

// Delete handles DELETE /comments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	err = h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), id, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch err {
		case ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the comment owner")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}
