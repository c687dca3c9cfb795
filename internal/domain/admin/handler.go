package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/user"
	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/response"
	"github.com/feedline/feedline-api/internal/pkg/validator"
)

// Handler handles direct admin HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates admin handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListUsers handles GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	users, total, err := h.service.ListUsers(r.Context(), limit, (page-1)*limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	if users == nil {
		users = []*user.User{}
	}

	response.WithMeta(w, users, response.Meta{Total: total, Page: page, Limit: limit})
}

// UpdateRole handles PUT /admin/users/{id}/role
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req UpdateRoleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	err = h.service.UpdateRole(r.Context(), middleware.GetUserID(r.Context()), userID, user.Role(req.Role), req.Reason)
	if err != nil {
		if err == user.ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}

// Suspend handles PUT /admin/users/{id}/suspend
func (h *Handler) Suspend(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req SuspendRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	err = h.service.SetSuspended(r.Context(), middleware.GetUserID(r.Context()), userID, *req.Suspended, req.Reason)
	if err != nil {
		if err == user.ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	err = h.service.DeleteUser(r.Context(), middleware.GetUserID(r.Context()), userID, r.URL.Query().Get("reason"))
	if err != nil {
		if err == user.ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}

// SetPostHidden handles PUT /admin/posts/{id}/hidden
func (h *Handler) SetPostHidden(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req HiddenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	err = h.service.SetPostHidden(r.Context(), middleware.GetUserID(r.Context()), postID, *req.Hidden, req.Reason)
	if err != nil {
		if err == post.ErrPostNotFound {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}

// DeletePost handles DELETE /admin/posts/{id}
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	err = h.service.DeletePost(r.Context(), middleware.GetUserID(r.Context()), postID, r.URL.Query().Get("reason"))
	if err != nil {
		if err == post.ErrPostNotFound {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"status": "deleted"})
}
