package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the GORM handle shared by every repository.
type Database struct {
	DB *gorm.DB
}

type openOptions struct {
	log       gormlogger.Interface
	dialector gorm.Dialector
}

// Option customises NewDatabase.
type Option func(*openOptions)

// WithSQLLogger routes statements into zap at the given GORM level. Statements
// slower than slowQuery are logged at warn.
func WithSQLLogger(l *zap.Logger, level gormlogger.LogLevel, slowQuery time.Duration) Option {
	return func(o *openOptions) {
		o.log = logger.NewGormLogger(l, level, slowQuery)
	}
}

// WithDialector replaces the PostgreSQL dialector built from the config.
func WithDialector(d gorm.Dialector) Option {
	return func(o *openOptions) {
		o.dialector = d
	}
}

// NewDatabase opens the connection pool described by cfg and verifies it
// with a ping bounded by ctx.
func NewDatabase(ctx context.Context, cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := openOptions{log: gormlogger.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dialector == nil {
		o.dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(o.dialector, &gorm.Config{
		Logger:                 o.log,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	d := &Database{DB: db}
	if err := d.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Ping reports whether the pool can reach PostgreSQL. The health endpoint
// calls it on every probe.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases the pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.Close()
}

// PoolStats is the subset of sql.DBStats reported by /system/info.
type PoolStats struct {
	MaxOpen int           `json:"max_open"`
	Open    int           `json:"open"`
	InUse   int           `json:"in_use"`
	Idle    int           `json:"idle"`
	Waits   int64         `json:"waits"`
	WaitFor time.Duration `json:"wait_duration"`
}

// Stats snapshots the connection pool.
func (d *Database) Stats() (PoolStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return PoolStats{}, fmt.Errorf("database handle: %w", err)
	}
	s := sqlDB.Stats()
	return PoolStats{
		MaxOpen: s.MaxOpenConnections,
		Open:    s.OpenConnections,
		InUse:   s.InUse,
		Idle:    s.Idle,
		Waits:   s.WaitCount,
		WaitFor: s.WaitDuration,
	}, nil
}
