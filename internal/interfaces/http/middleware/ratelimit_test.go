package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLimiter struct{}

func (failingLimiter) Take(context.Context, string) (cache.Quota, error) {
	return cache.Quota{}, errors.New("redis: connection refused")
}

func limitedRouter(t *testing.T, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/products", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func hit(r http.Handler, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	limiter := cache.NewMemoryRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)
	r := limitedRouter(t, RateLimit(limiter))

	w := hit(r, http.MethodGet, "/products", "10.1.1.1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/products", "10.1.1.1").Code)

	w = hit(r, http.MethodGet, "/products", "10.1.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/products", "10.1.1.2").Code)
}

func TestLoginRateLimit_SeparateScope(t *testing.T) {
	limiter := cache.NewMemoryRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/auth/login", LoginRateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/auth/login", "192.168.0.9").Code)
	w := hit(r, http.MethodPost, "/auth/login", "192.168.0.9")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many authentication attempts")

	assert.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/products", "192.168.0.9").Code,
		"login attempts do not consume the general quota")
}

func TestRateLimitByKey_LimiterDown(t *testing.T) {
	r := limitedRouter(t, RateLimitByKey(failingLimiter{}, "ip", func(c *gin.Context) string { return c.ClientIP() }, "slow down"))

	for i := 0; i < 3; i++ {
		w := hit(r, http.MethodGet, "/products", "10.1.1.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
