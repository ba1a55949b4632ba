package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/analysis"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/models"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/web"
)

// AveragesHandler serves the per-group market averages
type AveragesHandler struct {
	rates RateLoader
}

// NewAveragesHandler creates a new averages handler
func NewAveragesHandler(rates RateLoader) *AveragesHandler {
	return &AveragesHandler{rates: rates}
}

// GetAverages handles GET /api/v1/averages
func (h *AveragesHandler) GetAverages(c *gin.Context) {
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

	averages := analysis.GroupAverages(snap.Rows)
	rows := make([]models.GroupAverageRow, 0, len(averages))
	for _, avg := range averages {
		rows = append(rows, models.GroupAverageRow{
			Group:       avg.Group,
			Term:        avg.Term,
			AverageRate: avg.AverageRate,
			Color:       web.ColorFor(avg.Group),
		})
	}

	groups := analysis.Groups(snap.Rows)
	if groups == nil {
		groups = []model.Group{}
	}
	c.JSON(http.StatusOK, models.AveragesResponse{
		Averages: rows,
		Groups:   groups,
		Terms:    model.Terms,
		NoData:   len(snap.Rows) == 0,
	})
}
