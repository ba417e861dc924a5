package middleware

import (
	"context"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// DefaultProfilingSkip lists path prefixes served without profile labels.
var DefaultProfilingSkip = []string{"/health", "/swagger", "/static"}

var versionSegment = regexp.MustCompile(`^[vV][0-9]+$`)

// Profiling tags each request goroutine with pprof labels (method, route
// and resource) so CPU samples in Pyroscope can be split per endpoint.
// Requests whose path starts with one of skip are left unlabelled.
func Profiling(skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range skip {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	return map[string]string{
		"method":   c.Request.Method,
		"route":    route,
		"resource": resourceOf(route),
	}
}

// resourceOf returns the first literal segment of route after the api
// prefix, version and admin segments:
// "/api/v1/admin/products/:id" is "products".
func resourceOf(route string) string {
	for seg := range strings.SplitSeq(route, "/") {
		switch {
		case seg == "", seg == "api", seg == "admin", versionSegment.MatchString(seg):
		case strings.HasPrefix(seg, ":"), strings.HasPrefix(seg, "*"):
		default:
			return seg
		}
	}
	return ""
}
