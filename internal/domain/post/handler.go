package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/response"
	"github.com/feedline/feedline-api/internal/pkg/validator"
)

// Handler handles post HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates post handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /posts (public feed)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &ListFilter{
		AuthorID: r.URL.Query().Get("author"),
		Limit:    parseIntParam(r, "limit", 20),
		Offset:   parseIntParam(r, "offset", 0),
	}

	items, total, err := h.service.ListPublic(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, items, response.Meta{Total: total, Limit: filter.Limit})
}

// ListMine handles GET /posts/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	posts, err := h.service.ListMine(r.Context(), userID, parseIntParam(r, "limit", 20), parseIntParam(r, "offset", 0))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, posts)
}

// Create handles POST /posts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	p, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, p)
}

// Get handles GET /posts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())

	p, err := h.service.Get(r.Context(), id, viewerID, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch err {
		case ErrPostNotFound, ErrNotVisible:
			response.NotFound(w, "Post not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, p)
}

// Update handles PUT /posts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	p, err := h.service.Update(r.Context(), middleware.GetUserID(r.Context()), id, &req)
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the post owner")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, p)
}

// Delete handles DELETE /posts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	err = h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), id, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the post owner")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}

// UploadMedia handles POST /posts/{id}/media (multipart form, field "file")
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file")
		return
	}
	defer file.Close()

	url, err := h.service.AttachMedia(r.Context(), middleware.GetUserID(r.Context()), id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		switch err {
		case ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the post owner")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]string{"url": url})
}

func parseIntParam(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return def
}
