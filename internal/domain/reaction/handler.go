package reaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/response"
	"github.com/feedline/feedline-api/internal/pkg/validator"
)

// Handler handles reaction HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates reaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LikePost handles POST /posts/{id}/like
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.togglePost(w, r, KindLike)
}

// DislikePost handles POST /posts/{id}/dislike
func (h *Handler) DislikePost(w http.ResponseWriter, r *http.Request) {
	h.togglePost(w, r, KindDislike)
}

func (h *Handler) togglePost(w http.ResponseWriter, r *http.Request, kind Kind) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	counts, err := h.service.TogglePost(r.Context(), middleware.GetUserID(r.Context()), postID, kind)
	if err != nil {
		switch err {
		case post.ErrPostNotFound:
			response.NotFound(w, "Post not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, counts)
}

type reactRequest struct {
	Type string `json:"type" validate:"required,reaction_kind"`
}

// ReactComment handles POST /comments/{id}/reaction with body {"type": "like"|"dislike"}
func (h *Handler) ReactComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	var req reactRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	counts, err := h.service.ToggleComment(r.Context(), middleware.GetUserID(r.Context()), commentID, Kind(req.Type))
	if err != nil {
		switch err {
		case comment.ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case ErrInvalidKind:
			response.BadRequest(w, "Invalid reaction kind")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, counts)
}
