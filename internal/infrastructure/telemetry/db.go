package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSlowQueryThreshold = 200 * time.Millisecond
	queryStartKey             = "telemetry:query_start"
)

var (
	attrDBOperation = attribute.Key("db.operation")
	attrDBTable     = attribute.Key("db.table")
	attrPoolState   = attribute.Key("db.pool.state")
)

// DBInstrumentation records query latency, slow queries and pool usage for a
// gorm.DB and, when enabled, traces every statement through otelgorm.
type DBInstrumentation struct {
	slowThreshold time.Duration
	logger        *zap.Logger
	queryDuration metric.Float64Histogram
	slowQueries   metric.Int64Counter
	registration  metric.Registration
}

// InstrumentDB registers tracing, query metrics and pool gauges on db.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, meter metric.Meter, logger *zap.Logger) (*DBInstrumentation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.DBSlowQueryThresh
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}

	if cfg.Enabled && cfg.DBTraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
		if !cfg.DBLogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return nil, fmt.Errorf("register otelgorm: %w", err)
		}
	}

	queryDuration, err := meter.Float64Histogram("db_query_duration_seconds",
		metric.WithDescription("Database query latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...),
	)
	if err != nil {
		return nil, err
	}
	slowQueries, err := meter.Int64Counter("db_slow_query_total",
		metric.WithDescription("Queries slower than the configured threshold"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	d := &DBInstrumentation{
		slowThreshold: threshold,
		logger:        logger,
		queryDuration: queryDuration,
		slowQueries:   slowQueries,
	}
	if err := d.registerCallbacks(db); err != nil {
		return nil, err
	}
	if err := d.registerPoolGauges(db, meter); err != nil {
		return nil, err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", cfg.Enabled && cfg.DBTraceEnabled),
		zap.Duration("slow_query_threshold", threshold),
	)
	return d, nil
}

func (d *DBInstrumentation) registerCallbacks(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) { d.record(tx, operation) }
	}

	cb := db.Callback()
	steps := []struct {
		name     string
		register func() (error, error)
	}{
		{name: "create", register: func() (error, error) {
			return cb.Create().Before("gorm:create").Register("telemetry:before_create", before),
				cb.Create().After("gorm:create").Register("telemetry:after_create", after("INSERT"))
		}},
		{name: "query", register: func() (error, error) {
			return cb.Query().Before("gorm:query").Register("telemetry:before_query", before),
				cb.Query().After("gorm:query").Register("telemetry:after_query", after("SELECT"))
		}},
		{name: "update", register: func() (error, error) {
			return cb.Update().Before("gorm:update").Register("telemetry:before_update", before),
				cb.Update().After("gorm:update").Register("telemetry:after_update", after("UPDATE"))
		}},
		{name: "delete", register: func() (error, error) {
			return cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", before),
				cb.Delete().After("gorm:delete").Register("telemetry:after_delete", after("DELETE"))
		}},
		{name: "row", register: func() (error, error) {
			return cb.Row().Before("gorm:row").Register("telemetry:before_row", before),
				cb.Row().After("gorm:row").Register("telemetry:after_row", after(""))
		}},
		{name: "raw", register: func() (error, error) {
			return cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", before),
				cb.Raw().After("gorm:raw").Register("telemetry:after_raw", after(""))
		}},
	}
	for _, step := range steps {
		if errBefore, errAfter := step.register(); errBefore != nil || errAfter != nil {
			return fmt.Errorf("register %s callbacks: %w", step.name, errors.Join(errBefore, errAfter))
		}
	}
	return nil
}

func (d *DBInstrumentation) record(tx *gorm.DB, operation string) {
	v, ok := tx.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)

	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if operation == "" {
		operation = detectOperation(tx.Statement.SQL.String())
	}
	attrs := metric.WithAttributes(attrDBOperation.String(operation), attrDBTable.String(tx.Statement.Table))
	d.queryDuration.Record(ctx, elapsed.Seconds(), attrs)

	span := trace.SpanFromContext(ctx)
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) && span.IsRecording() {
		span.SetStatus(codes.Error, tx.Error.Error())
	}

	if elapsed < d.slowThreshold {
		return
	}
	d.slowQueries.Add(ctx, 1, attrs)
	if span.IsRecording() {
		span.SetAttributes(attribute.Bool("db.slow_query", true))
	}
	d.logger.Warn("Slow query",
		zap.String("operation", operation),
		zap.String("table", tx.Statement.Table),
		zap.Duration("elapsed", elapsed),
		zap.Duration("threshold", d.slowThreshold),
	)
}

func (d *DBInstrumentation) registerPoolGauges(db *gorm.DB, meter metric.Meter) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}
	maxConnections, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	d.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(attrPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(attrPoolState.String("idle")))
		o.ObserveInt64(maxConnections, int64(stats.MaxOpenConnections))
		return nil
	}, connections, maxConnections)
	return err
}

// Close stops pool observations
func (d *DBInstrumentation) Close() error {
	if d.registration == nil {
		return nil
	}
	return d.registration.Unregister()
}

func detectOperation(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
