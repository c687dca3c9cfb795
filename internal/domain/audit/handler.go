package audit

import (
	"net/http"
	"strconv"

	"github.com/feedline/feedline-api/internal/pkg/response"
)

// Handler handles audit HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /admin/audits
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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
		Action:     q.Get("action"),
		TargetType: q.Get("target_type"),
		AdminName:  q.Get("admin"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	items, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}
	if items == nil {
		items = []*ListItem{}
	}

	response.WithMeta(w, items, response.Meta{Total: total, Page: page, Limit: limit})
}

// Stats handles GET /admin/audits/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}
