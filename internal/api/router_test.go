package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/middleware"
	"github.com/swiss1111/advanced-stock-price-checker/internal/api/response"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database/store"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/finnhub"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/config"
	"github.com/swiss1111/advanced-stock-price-checker/internal/service/pricesync"
	stockservice "github.com/swiss1111/advanced-stock-price-checker/internal/service/stock"
)

type testApp struct {
	handler  http.Handler
	poller   *pricesync.Poller
	failures atomic.Bool
}

func newTestApp(t *testing.T, swaggerURL string) *testApp {
	t.Helper()
	app := &testApp{}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.failures.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"c":235.06,"d":1.9,"dp":0.8,"h":236,"l":232,"o":233,"pc":233.16,"t":1732640657}`)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "release", SwaggerURL: swaggerURL},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "stock.db")},
	}

	db, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	quotes := finnhub.NewClient("test-key", finnhub.WithBaseURL(upstream.URL))
	svc := stockservice.NewService(db.Symbols, db.Prices, quotes)
	app.poller = pricesync.NewPoller(db.Symbols, db.Prices, quotes, zerolog.Nop())

	router, err := NewRouter(cfg, svc, db, "test")
	require.NoError(t, err)
	app.handler = router.Handler()
	return app
}

func (a *testApp) do(method, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(method, url, nil))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message
}

func TestStockFlow(t *testing.T) {
	app := newTestApp(t, "")

	// activating twice succeeds both times
	for i := 0; i < 2; i++ {
		rec := app.do(http.MethodPut, "/stock/AAPL")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Symbol 'AAPL' activated successfully"}`, rec.Body.String())
	}

	// activated but never polled
	rec := app.do(http.MethodGet, "/stock/AAPL")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No price data available for symbol 'AAPL'", errorMessage(t, rec))

	// unknown symbol
	rec = app.do(http.MethodGet, "/stock/MSFT")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Symbol 'MSFT' not found", errorMessage(t, rec))

	// one tick stores one observation
	require.True(t, app.poller.RunTick(context.Background()))

	rec = app.do(http.MethodGet, "/stock/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"currentPrice":235.06,"lastUpdate":"2024-11-26T17:04:17.000Z","movingAverage":235.06}`,
		rec.Body.String())

	// upstream failure on read
	app.failures.Store(true)
	rec = app.do(http.MethodGet, "/stock/AAPL")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error retrieving stock price", errorMessage(t, rec))
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t, "")

	rec := app.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "fixed-id", rec.Header().Get(middleware.RequestIDHeader))
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fixed-id", body.Error.RequestID)
}

func TestSwaggerRoutes(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		app := newTestApp(t, "")
		assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/openapi.json").Code)
	})

	t.Run("enabled", func(t *testing.T) {
		app := newTestApp(t, "/api")

		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api").Code)
		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/openapi.json").Code)
		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/openapi.yaml").Code)
	})
}

func TestHealthReady(t *testing.T) {
	app := newTestApp(t, "")

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/health/detailed").Code)
}
