package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig configures the server span middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths are served without a span (health probes, metrics scrapes).
	SkipPaths []string
}

// Tracing starts a server span per request, named "METHOD route", e.g.
// "GET /api/v1/products/:id". It is a pass-through when disabled.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	var opts []otelgin.Option
	if len(cfg.SkipPaths) > 0 {
		opts = append(opts, otelgin.WithFilter(func(r *http.Request) bool {
			return !slices.Contains(cfg.SkipPaths, r.URL.Path)
		}))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanAnnotator decorates the request span once the handler chain has run:
// request id, caller identity when a token was accepted, and an error status
// for 4xx/5xx responses. Register it after Tracing.
func SpanAnnotator() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		annotateSpan(c, span)
	}
}

func annotateSpan(c *gin.Context, span trace.Span) {
	attrs := make([]attribute.KeyValue, 0, 4)
	if id := requestIDFromContext(c); id != "" {
		attrs = append(attrs, attribute.String("request_id", id))
	}
	if id := GetJWTUserID(c); id != "" {
		attrs = append(attrs, attribute.String("user_id", id), attribute.String("user_role", GetJWTRole(c)))
	}

	status := c.Writer.Status()
	if status >= http.StatusBadRequest {
		attrs = append(attrs, attribute.Int("http.status_code", status))
		span.SetStatus(codes.Error, statusDescription(status))
	}
	span.SetAttributes(attrs...)
}

func statusDescription(status int) string {
	if status >= http.StatusInternalServerError {
		return "Internal Server Error"
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusTooManyRequests:
		return http.StatusText(status)
	}
	return "Client Error"
}
