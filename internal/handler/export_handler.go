package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"product-dashboard/internal/export"
	"product-dashboard/internal/model"
	"product-dashboard/internal/service"

	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the spreadsheet download.
type ExportHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service service.DashboardService, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With().Str("handler", "export").Logger(),
	}
}

// Workbook handles GET /api/export.xlsx: every product matching the current
// filters, in the current order, plus the inventory summary.
func (h *ExportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger, http.MethodGet)
		return
	}

	products := h.service.Matching()
	summary := h.service.View().Summary

	// buffered so a failed render can still answer with a JSON error
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, products, summary); err != nil {
		h.logger.Error().Err(err).Msg("failed to render workbook")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to export products", h.logger)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("client went away during export")
	}

	h.logger.Info().Int("products", len(products)).Msg("workbook exported")
}
