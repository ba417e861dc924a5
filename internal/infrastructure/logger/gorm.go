package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQuery is the threshold above which statements log at warn.
const DefaultSlowQuery = 200 * time.Millisecond

// GormLogger routes GORM statements into zap. Record-not-found errors are
// not logged; repositories map them to domain errors.
type GormLogger struct {
	log       *zap.Logger
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

// NewGormLogger returns a GORM logger writing to l under the "gorm" name.
// A zero slowQuery disables slow statement warnings.
func NewGormLogger(l *zap.Logger, level gormlogger.LogLevel, slowQuery time.Duration) *GormLogger {
	return &GormLogger{log: l.Named("gorm"), level: level, slowQuery: slowQuery}
}

// GormLevel maps the application log level onto GORM's levels. debug and
// info log every statement; anything unknown logs warnings and errors.
func GormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Info {
		g.log.Sugar().Infof(msg, data...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Warn {
		g.log.Sugar().Warnf(msg, data...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Error {
		g.log.Sugar().Errorf(msg, data...)
	}
}

// Trace logs a finished statement: errors at error, slow statements at
// warn, and everything else at debug when the level is Info.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() []zap.Field {
		sql, rows := fc()
		f := []zap.Field{
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		}
		if id := RequestID(ctx); id != "" {
			f = append(f, zap.String("request_id", id))
		}
		return f
	}

	switch {
	case err != nil && g.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		g.log.Error("sql error", append(fields(), zap.Error(err))...)
	case g.slowQuery > 0 && elapsed > g.slowQuery && g.level >= gormlogger.Warn:
		g.log.Warn("slow sql", append(fields(), zap.Duration("threshold", g.slowQuery))...)
	case g.level >= gormlogger.Info:
		g.log.Debug("sql", fields()...)
	}
}
