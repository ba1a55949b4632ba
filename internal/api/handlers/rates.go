// Package handlers implements the HTTP handlers of the dashboard and its
// JSON API. Handlers depend on small loader interfaces so tests can drive
// them with fixed datasets.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/models"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
)

// RateLoader supplies the current bank-rate snapshot, live or fallback.
type RateLoader interface {
	Load(ctx context.Context) (source.Snapshot, error)
}

// RatesHandler serves the bank-rate dataset
type RatesHandler struct {
	rates RateLoader
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(rates RateLoader) *RatesHandler {
	return &RatesHandler{rates: rates}
}

// GetRates handles GET /api/v1/rates
func (h *RatesHandler) GetRates(c *gin.Context) {
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

	rows := snap.Rows
	if rows == nil {
		rows = []model.BankRate{}
	}
	c.JSON(http.StatusOK, models.RatesResponse{
		Rows:      rows,
		Origin:    snap.Origin,
		Reason:    string(snap.Reason),
		FetchedAt: snap.FetchedAt,
		Count:     len(rows),
	})
}
