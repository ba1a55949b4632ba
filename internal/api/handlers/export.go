package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/models"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/export"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/metrics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves dataset downloads
type ExportHandler struct {
	rates RateLoader
	now   func() time.Time
}

// NewExportHandler creates a new export handler
func NewExportHandler(rates RateLoader) *ExportHandler {
	return &ExportHandler{rates: rates, now: time.Now}
}

// Export handles GET /api/v1/export
func (h *ExportHandler) Export(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if req.Format != export.FormatCSV && req.Format != export.FormatXLSX {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FORMAT",
				Message: fmt.Sprintf("format must be %q or %q, got %q", export.FormatCSV, export.FormatXLSX, req.Format),
			},
		})
		return
	}

	snap, err := h.rates.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SOURCE_UNAVAILABLE",
				Message: err.Error(),
			},
		})
		return
	}

	// Encode into a buffer so failures can still answer with an error
	// envelope instead of a truncated download.
	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	switch req.Format {
	case export.FormatCSV:
		err = export.CSV(&buf, snap.Rows)
	case export.FormatXLSX:
		contentType = xlsxContentType
		err = export.XLSX(&buf, snap.Rows)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EXPORT_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	metrics.ExportTotal.WithLabelValues(req.Format).Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(req.Format, h.now())))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
