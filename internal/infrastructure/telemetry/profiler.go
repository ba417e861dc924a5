package telemetry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/grafana/pyroscope-go"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Profiler streams continuous profiles to a Pyroscope server.
type Profiler struct {
	session  *pyroscope.Profiler
	stopOnce sync.Once
	stopErr  error
}

// NewProfiler starts profiling when cfg.ProfilingEnabled is set and returns
// an inert Profiler otherwise.
func NewProfiler(cfg config.TelemetryConfig, log *zap.Logger) (*Profiler, error) {
	if !cfg.ProfilingEnabled {
		return &Profiler{}, nil
	}
	if cfg.ProfilingServer == "" {
		return nil, errors.New("telemetry.profiling_server is required when profiling is enabled")
	}

	tags := map[string]string{}
	if host, err := os.Hostname(); err == nil {
		tags["hostname"] = host
	}
	session, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ProfilingServer,
		Logger:          pyroscopeLogger{log.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	log.Info("profiling enabled", zap.String("server", cfg.ProfilingServer))
	return &Profiler{session: session}, nil
}

func (p *Profiler) IsEnabled() bool { return p.session != nil }

// Stop flushes the last profiles. Later calls return the first result.
func (p *Profiler) Stop() error {
	if p.session == nil {
		return nil
	}
	p.stopOnce.Do(func() { p.stopErr = p.session.Stop() })
	return p.stopErr
}

// pyroscopeLogger demotes the client's chatty info logs to debug.
type pyroscopeLogger struct{ s *zap.SugaredLogger }

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

// WithProfilingLabels runs fn with pprof labels attached to its goroutine.
// Labels with a blank key or empty value are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := labelPairs(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// OperationLabels copies extra and sets "operation" to name.
func OperationLabels(name string, extra map[string]string) map[string]string {
	labels := maps.Clone(extra)
	if labels == nil {
		labels = make(map[string]string, 1)
	}
	labels["operation"] = name
	return labels
}

func labelPairs(labels map[string]string) []string {
	clean := make(map[string]string, len(labels))
	for k, v := range labels {
		if strings.TrimSpace(k) != "" && v != "" {
			clean[labelKey(k)] = v
		}
	}
	pairs := make([]string, 0, 2*len(clean))
	for _, k := range slices.Sorted(maps.Keys(clean)) {
		pairs = append(pairs, k, clean[k])
	}
	return pairs
}

// labelKey lowercases key and replaces anything outside [a-z0-9_] with '_'.
func labelKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}
		return '_'
	}, strings.ToLower(strings.TrimSpace(key)))
}
