package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrHTTPMethod     = attribute.Key("http.method")
	attrHTTPRoute      = attribute.Key("http.route")
	attrHTTPStatusCode = attribute.Key("http.status_code")
	attrHTTPStatus     = attribute.Key("http.status_class")
	attrUserRole       = attribute.Key("user.role")
)

var bodySizeBuckets = []float64{100, 500, 1e3, 5e3, 1e4, 5e4, 1e5, 5e5, 1e6, 5e6, 1e7}

type httpInstruments struct {
	requests     metric.Int64Counter
	inFlight     metric.Int64UpDownCounter
	duration     metric.Float64Histogram
	requestSize  metric.Float64Histogram
	responseSize metric.Float64Histogram
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		ins  httpInstruments
		errs [5]error
	)
	ins.requests, errs[0] = meter.Int64Counter("http_server_request_total",
		metric.WithDescription("HTTP requests served"), metric.WithUnit("{request}"))
	ins.inFlight, errs[1] = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in flight"), metric.WithUnit("{request}"))
	ins.duration, errs[2] = meter.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(telemetry.HTTPDurationBuckets...))
	ins.requestSize, errs[3] = meter.Float64Histogram("http_server_request_size_bytes",
		metric.WithDescription("HTTP request body size"), metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(bodySizeBuckets...))
	ins.responseSize, errs[4] = meter.Float64Histogram("http_server_response_size_bytes",
		metric.WithDescription("HTTP response body size"), metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(bodySizeBuckets...))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return &ins, nil
}

// HTTPMetrics records, per matched route, a request counter (labelled with
// status and caller role), a latency histogram, body size histograms and an
// in-flight gauge. Unmatched paths are reported under route "unknown".
func HTTPMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	ins, err := newHTTPInstruments(meter)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		reqSize := c.Request.ContentLength

		ins.inFlight.Add(ctx, 1)
		defer ins.inFlight.Add(ctx, -1)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()
		where := metric.WithAttributes(attrHTTPMethod.String(c.Request.Method), attrHTTPRoute.String(route))

		counted := []attribute.KeyValue{
			attrHTTPMethod.String(c.Request.Method),
			attrHTTPRoute.String(route),
			attrHTTPStatusCode.Int(status),
			attrHTTPStatus.String(StatusClass(status)),
		}
		if role := GetJWTRole(c); role != "" {
			counted = append(counted, attrUserRole.String(role))
		}
		ins.requests.Add(ctx, 1, metric.WithAttributes(counted...))
		ins.duration.Record(ctx, time.Since(start).Seconds(), where)
		if reqSize > 0 {
			ins.requestSize.Record(ctx, float64(reqSize), where)
		}
		if n := c.Writer.Size(); n > 0 {
			ins.responseSize.Record(ctx, float64(n), where)
		}
	}, nil
}

// StatusClass buckets a status code as "2xx" through "5xx", or "other".
func StatusClass(status int) string {
	if status < 200 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
