// Package api assembles the HTTP server: middleware chain, routes and
// handler wiring.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/handlers"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api/middleware"
)

// Deps carries the collaborators the routes need. Handlers see interfaces,
// so tests can wire fixed datasets instead of live sources.
type Deps struct {
	Logger   *zap.Logger
	Rates    handlers.RateLoader
	Fintech  handlers.FintechLister
	Renderer handlers.DashboardRenderer
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(deps.Logger))

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(deps.Rates, deps.Fintech, deps.Renderer, deps.Logger)
	ratesHandler := handlers.NewRatesHandler(deps.Rates)
	fintechHandler := handlers.NewFintechHandler(deps.Fintech)
	averagesHandler := handlers.NewAveragesHandler(deps.Rates)
	exportHandler := handlers.NewExportHandler(deps.Rates)

	router.GET("/", dashboardHandler.GetDashboard)

	// Health check
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/rates", ratesHandler.GetRates)
		api.GET("/fintech", fintechHandler.GetProducts)
		api.GET("/averages", averagesHandler.GetAverages)
		api.GET("/export", exportHandler.Export)
	}

	return router
}
