package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func systemRouter(h *SystemHandler) *gin.Engine {
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/system/info", h.GetSystemInfo)
	r.GET("/system/ping", h.Ping)
	return r
}

func TestSystemHandler_Health(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{"no checks", nil, http.StatusOK, "healthy", map[string]string{}},
		{"all pass", map[string]HealthCheck{"database": ok, "redis": ok}, http.StatusOK, "healthy",
			map[string]string{"database": "ok", "redis": "ok"}},
		{"one fails", map[string]HealthCheck{"database": ok, "redis": down}, http.StatusServiceUnavailable, "unhealthy",
			map[string]string{"database": "ok", "redis": "error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(systemRouter(NewSystemHandler("1.2.3", tt.checks)), http.MethodGet, "/health", nil)
			require.Equal(t, tt.wantCode, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantChecks, resp.Checks)
			assert.NotEmpty(t, resp.Time)
		})
	}
}

func TestSystemHandler_InfoAndPing(t *testing.T) {
	r := systemRouter(NewSystemHandler("1.2.3", nil))

	w := perform(r, http.MethodGet, "/system/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[SystemInfoResponse](t, w).Data
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)

	assert.Nil(t, info.Database)

	w = perform(r, http.MethodGet, "/system/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode[any](t, w).Message)
}

func TestSystemHandler_InfoWithPoolStats(t *testing.T) {
	h := NewSystemHandler("1.2.3", nil).WithPoolStats(func() (any, error) {
		return map[string]int{"open": 3}, nil
	})

	w := perform(systemRouter(h), http.MethodGet, "/system/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"open": float64(3)}, decode[SystemInfoResponse](t, w).Data.Database)
}
