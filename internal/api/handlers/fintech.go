package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/models"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
)

// FintechLister supplies the fintech and bond product table.
type FintechLister interface {
	Load() []model.FintechProduct
}

// FintechHandler serves the fintech product dataset
type FintechHandler struct {
	products FintechLister
}

// NewFintechHandler creates a new fintech handler
func NewFintechHandler(products FintechLister) *FintechHandler {
	return &FintechHandler{products: products}
}

// GetProducts handles GET /api/v1/fintech
func (h *FintechHandler) GetProducts(c *gin.Context) {
	products := h.products.Load()
	if products == nil {
		products = []model.FintechProduct{}
	}
	c.JSON(http.StatusOK, models.FintechResponse{
		Products: products,
		Count:    len(products),
	})
}
