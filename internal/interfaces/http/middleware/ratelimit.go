package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Limiter charges one request against key. cache.MemoryRateLimiter and
// cache.RedisRateLimiter implement it.
type Limiter interface {
	Take(ctx context.Context, key string) (cache.Quota, error)
}

// RateLimit limits requests per client IP.
func RateLimit(l Limiter) gin.HandlerFunc {
	return RateLimitByKey(l, "ip", func(c *gin.Context) string { return c.ClientIP() },
		"Too many requests. Please try again later.")
}

// LoginRateLimit is the stricter per-IP limit in front of admin login.
func LoginRateLimit(l Limiter) gin.HandlerFunc {
	return RateLimitByKey(l, "login", func(c *gin.Context) string { return c.ClientIP() },
		"Too many authentication attempts. Please try again later.")
}

// RateLimitByKey charges each request to scope plus the key extracted from the
// context. Limiter errors let the request through.
func RateLimitByKey(l Limiter, scope string, keyFunc func(*gin.Context) string, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := l.Take(c.Request.Context(), scope+":"+keyFunc(c))
		if err != nil {
			logger.FromGin(c).Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(q.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		if !q.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(q.ResetIn.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited, message, requestIDFromContext(c)))
			return
		}
		c.Next()
	}
}
