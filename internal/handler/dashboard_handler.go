package handler

import (
	"net/http"

	"product-dashboard/internal/model"
	"product-dashboard/internal/query"
	"product-dashboard/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the view model and the view-state controls.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

type searchRequest struct {
	Term string `json:"term"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type sortRequest struct {
	Sort query.SortKey `json:"sort"`
}

type pageRequest struct {
	Page *int `json:"page"`
}

type viewModeRequest struct {
	Mode model.ViewMode `json:"mode"`
}

// Get handles GET /api/dashboard requests.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger, http.MethodGet)
		return
	}

	writeJSON(w, http.StatusOK, h.service.View())
}

// Update handles PUT /api/dashboard/{search|category|sort|page|view} requests
// and responds with the refreshed view.
func (h *DashboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, h.logger, http.MethodPut)
		return
	}

	switch control := pathParam(r, "/api/dashboard/"); control {
	case "search":
		var req searchRequest
		if !readJSON(w, r, h.logger, &req) {
			return
		}
		h.service.SetSearch(req.Term)

	case "category":
		var req categoryRequest
		if !readJSON(w, r, h.logger, &req) {
			return
		}
		h.service.SetCategory(req.Category)

	case "sort":
		var req sortRequest
		if !readJSON(w, r, h.logger, &req) {
			return
		}
		if !req.Sort.Known() {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "unknown sort key", h.logger)
			return
		}
		h.service.SetSort(req.Sort)

	case "page":
		var req pageRequest
		if !readJSON(w, r, h.logger, &req) {
			return
		}
		if req.Page == nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "page is required", h.logger)
			return
		}
		h.service.SetPage(*req.Page)

	case "view":
		var req viewModeRequest
		if !readJSON(w, r, h.logger, &req) {
			return
		}
		if err := h.service.SetViewMode(req.Mode); err != nil {
			writeDomainError(w, err, "failed to change view mode", h.logger)
			return
		}

	default:
		writeError(w, http.StatusNotFound, model.ErrCodeInvalidParameter, "unknown dashboard control", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.View())
}

// DismissNotification handles DELETE /api/notifications/{id} requests.
func (h *DashboardHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, h.logger, http.MethodDelete)
		return
	}

	id := pathParam(r, "/api/notifications/")
	if id == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "notification ID is required", h.logger)
		return
	}

	if err := h.service.DismissNotification(id); err != nil {
		writeDomainError(w, err, "failed to dismiss notification", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
