package moderation

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/middleware"
	"github.com/feedline/feedline-api/internal/pkg/response"
	"github.com/feedline/feedline-api/internal/pkg/validator"
)

// Handler handles report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateReport handles POST /reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	report, err := h.service.CreateReport(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		switch err {
		case ErrTargetNotFound:
			response.NotFound(w, "Report target not found")
		case ErrDuplicateReport:
			response.Conflict(w, "You have already reported this target")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, report)
}

// ListReports handles GET /reports (admin)
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 50
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	page := 1
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	filter := &ListFilter{
		Status:     q.Get("status"),
		Reason:     q.Get("reason"),
		TargetType: q.Get("target_type"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	items, total, err := h.service.ListReports(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}
	if items == nil {
		items = []*ListItem{}
	}

	response.WithMeta(w, items, response.Meta{Total: total, Page: page, Limit: limit})
}

// GetReport handles GET /reports/{id} (admin)
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		if err == ErrReportNotFound {
			response.NotFound(w, "Report not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, report)
}

// UpdateReport handles PUT /reports/{id} (admin)
func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req UpdateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	report, err := h.service.UpdateReport(r.Context(), middleware.GetUserID(r.Context()), id, &req)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrTargetNotFound:
			response.NotFound(w, "Report target no longer exists")
		case ErrUnsupportedAction:
			response.BadRequest(w, "Action not applicable to this target type")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, report)
}

// Stats handles GET /reports/stats (admin)
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}
