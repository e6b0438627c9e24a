package handler

import (
	"context"
	"net/http"
	"strings"

	"product-dashboard/internal/model"
	"product-dashboard/internal/service"

	"github.com/rs/zerolog"
)

// ConfirmDeleteHeader must be "yes" for a delete to go ahead.
const ConfirmDeleteHeader = "X-Confirm-Delete"

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.DashboardService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

type formTargetRequest struct {
	ID string `json:"id"`
}

// Collection handles GET and POST on /api/products.
func (h *ProductHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.service.Products())
	case http.MethodPost:
		h.create(w, r)
	default:
		writeMethodNotAllowed(w, h.logger, http.MethodGet, http.MethodPost)
	}
}

// Item handles GET, PUT and DELETE on /api/products/{id}.
func (h *ProductHandler) Item(w http.ResponseWriter, r *http.Request) {
	productID := pathParam(r, "/api/products/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "product ID is required", h.logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		product, err := h.service.Product(productID)
		if err != nil {
			writeDomainError(w, err, "failed to retrieve product", h.logger)
			return
		}
		writeJSON(w, http.StatusOK, product)
	case http.MethodPut:
		h.update(w, r, productID)
	case http.MethodDelete:
		h.delete(w, r, productID)
	default:
		writeMethodNotAllowed(w, h.logger, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var fields model.FormFields
	if !readJSON(w, r, h.logger, &fields) {
		return
	}

	product, invalid, err := h.service.AddProduct(r.Context(), fields)
	if err != nil {
		writeDomainError(w, err, "failed to add product", h.logger)
		return
	}
	if !invalid.Valid() {
		writeValidationError(w, invalid, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, productID string) {
	var fields model.FormFields
	if !readJSON(w, r, h.logger, &fields) {
		return
	}

	product, invalid, err := h.service.EditProduct(r.Context(), productID, fields)
	if err != nil {
		writeDomainError(w, err, "failed to update product", h.logger)
		return
	}
	if !invalid.Valid() {
		writeValidationError(w, invalid, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, productID string) {
	confirmed := strings.EqualFold(r.Header.Get(ConfirmDeleteHeader), "yes")
	confirmer := service.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		h.logger.Debug().Str("product_id", productID).Bool("confirmed", confirmed).Str("prompt", prompt).Msg("delete confirmation")
		return confirmed
	})

	if err := h.service.DeleteProduct(r.Context(), productID, confirmer); err != nil {
		writeDomainError(w, err, "failed to delete product", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FormTarget handles PUT /api/form/target. A non-empty id starts editing that
// product and returns its pre-filled fields; an empty id cancels editing.
func (h *ProductHandler) FormTarget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, h.logger, http.MethodPut)
		return
	}

	var req formTargetRequest
	if !readJSON(w, r, h.logger, &req) {
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		h.service.CancelEdit()
		writeJSON(w, http.StatusOK, model.FormFields{})
		return
	}

	fields, err := h.service.BeginEdit(req.ID)
	if err != nil {
		writeDomainError(w, err, "failed to start editing", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, fields)
}

// SubmitForm handles POST /api/form: it edits the current form target, or adds
// a product when nothing is being edited.
func (h *ProductHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var fields model.FormFields
	if !readJSON(w, r, h.logger, &fields) {
		return
	}

	product, edited, invalid, err := h.service.SubmitForm(r.Context(), fields)
	if err != nil {
		writeDomainError(w, err, "failed to submit form", h.logger)
		return
	}
	if !invalid.Valid() {
		writeValidationError(w, invalid, h.logger)
		return
	}

	status := http.StatusCreated
	if edited {
		status = http.StatusOK
	}
	writeJSON(w, status, product)
}
