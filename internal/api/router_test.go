package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/web"
)

type fixedRates struct{}

func (fixedRates) Load(context.Context) (source.Snapshot, error) {
	return source.Snapshot{
		Rows:      source.FallbackRates(),
		Origin:    source.OriginLive,
		FetchedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}, nil
}

type fixedFintech struct{}

func (fixedFintech) Load() []model.FintechProduct { return source.FintechProducts() }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer, err := web.NewRenderer(false)
	require.NoError(t, err)
	return NewRouter(Deps{
		Logger:   zap.NewNop(),
		Rates:    fixedRates{},
		Fintech:  fixedFintech{},
		Renderer: renderer,
	})
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(newTestRouter(t), "/healthz")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDashboardRoute(t *testing.T) {
	w := get(newTestRouter(t), "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EZ.Finance")
	assert.Contains(t, w.Body.String(), "Vietcombank")
}

func TestRatesRoute(t *testing.T) {
	w := get(newTestRouter(t), "/api/v1/rates")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"origin":"live"`)
}

func TestMetricsRoute(t *testing.T) {
	router := newTestRouter(t)
	// Drive one request through first so instruments have samples.
	get(router, "/api/v1/rates")

	w := get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# HELP")
	assert.Contains(t, w.Body.String(), "ezfinance_http_request_duration_seconds")
}

func TestRequestIDEchoed(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/healthz")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rates", nil)
	req.Header.Set("Origin", "https://status.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIs404(t *testing.T) {
	w := get(newTestRouter(t), "/api/v1/nonsense")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
