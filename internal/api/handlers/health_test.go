package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/response"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database"
)

type staticHealth struct {
	status *database.HealthStatus
}

func (s staticHealth) Health(context.Context) *database.HealthStatus {
	return s.status
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(staticHealth{}, "test")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestReady(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		h := NewHealthHandler(staticHealth{&database.HealthStatus{Status: database.StatusHealthy}}, "test")

		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(staticHealth{&database.HealthStatus{Status: database.StatusUnhealthy, Error: "ping failed"}}, "test")

		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body ReadyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "error", body.Checks["database"])
	})
}

func TestDetailed(t *testing.T) {
	h := NewHealthHandler(staticHealth{&database.HealthStatus{
		Status:       database.StatusHealthy,
		Driver:       "sqlite",
		ResponseTime: "1ms",
		MaxConns:     1,
	}}, "1.2.3")

	rec := httptest.NewRecorder()
	h.Detailed(rec, httptest.NewRequest(http.MethodGet, "/api/health/detailed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data DetailedHealthResponse `json:"data"`
		Meta response.Meta          `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body.Data.Version)
	assert.Equal(t, database.StatusHealthy, body.Data.Components["database"].Status)
	assert.Equal(t, "sqlite", body.Data.Components["database"].Details["driver"])
	assert.False(t, body.Meta.Timestamp.IsZero())
}
