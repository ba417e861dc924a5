package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	attrImportKind = attribute.Key("import.kind")
	attrOutcome    = attribute.Key("outcome")
	attrCacheName  = attribute.Key("cache")
	attrCacheEvent = attribute.Key("event")
)

// StoreMetrics holds the storefront's own instruments
type StoreMetrics struct {
	meter      metric.Meter
	importRows metric.Int64Counter
	imports    metric.Int64Counter
}

// NewStoreMetrics creates the storefront counters on meter
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	importRows, err := meter.Int64Counter("store_import_rows_total",
		metric.WithDescription("Rows processed by location imports by outcome"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}
	imports, err := meter.Int64Counter("store_imports_total",
		metric.WithDescription("Location import runs"),
		metric.WithUnit("{import}"),
	)
	if err != nil {
		return nil, err
	}
	return &StoreMetrics{meter: meter, importRows: importRows, imports: imports}, nil
}

// RecordImport counts one import run of the given kind and its row outcomes
func (m *StoreMetrics) RecordImport(ctx context.Context, kind string, created, updated, failed int) {
	kindAttr := attrImportKind.String(kind)
	m.imports.Add(ctx, 1, metric.WithAttributes(kindAttr))
	for outcome, n := range map[string]int{"created": created, "updated": updated, "failed": failed} {
		if n > 0 {
			m.importRows.Add(ctx, int64(n), metric.WithAttributes(kindAttr, attrOutcome.String(outcome)))
		}
	}
}

// CacheStatsFunc reports cumulative hit and miss counts
type CacheStatsFunc func() (hits, misses int64)

// ObserveCache exports a cache's hit and miss counters as store_cache_lookups_total
func (m *StoreMetrics) ObserveCache(name string, stats CacheStatsFunc) (metric.Registration, error) {
	if stats == nil {
		return nil, errors.New("cache stats function is required")
	}
	lookups, err := m.meter.Int64ObservableCounter("store_cache_lookups_total",
		metric.WithDescription("Cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}
	return m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		hits, misses := stats()
		o.ObserveInt64(lookups, hits, metric.WithAttributes(attrCacheName.String(name), attrCacheEvent.String("hit")))
		o.ObserveInt64(lookups, misses, metric.WithAttributes(attrCacheName.String(name), attrCacheEvent.String("miss")))
		return nil
	}, lookups)
}
