package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/analysis"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/models"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/web"
)

// DashboardRenderer turns the assembled datasets into the HTML page.
type DashboardRenderer interface {
	Dashboard(w io.Writer, data web.DashboardData) error
}

// DashboardHandler serves the HTML dashboard
type DashboardHandler struct {
	rates    RateLoader
	products FintechLister
	renderer DashboardRenderer
	logger   *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(rates RateLoader, products FintechLister, renderer DashboardRenderer, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{rates: rates, products: products, renderer: renderer, logger: logger}
}

// GetDashboard handles GET /
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
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

	data := web.DashboardData{
		Snapshot: snap,
		Products: h.products.Load(),
		Averages: analysis.GroupAverages(snap.Rows),
	}

	// Render into a buffer; a half-written page is worse than a 500.
	var buf bytes.Buffer
	if err := h.renderer.Dashboard(&buf, data); err != nil {
		h.logger.Error("render dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RENDER_FAILED",
				Message: "could not render the dashboard",
			},
		})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
