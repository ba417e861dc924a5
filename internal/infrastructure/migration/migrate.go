// Package migration runs and scaffolds the PostgreSQL schema migrations.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/storefront/backend/migrations"
	"go.uber.org/zap"
)

// Migrator applies the storefront schema with golang-migrate. Close
// releases both the source and the database handle passed to it.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New reads migrations from a directory on disk.
func New(db *sql.DB, dir string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migrations in %s: %w", dir, err)
	}
	return wrap(m, log), nil
}

// NewEmbedded uses the migrations compiled into the binary.
func NewEmbedded(db *sql.DB, log *zap.Logger) (*Migrator, error) {
	return NewFromFS(db, migrations.FS, ".", log)
}

// NewFromFS reads migrations from dir inside fsys.
func NewFromFS(db *sql.DB, fsys fs.FS, dir string, log *zap.Logger) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return wrap(m, log), nil
}

func wrap(m *migrate.Migrate, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("migrate")
	m.Log = zapMigrateLogger{log: log}
	return &Migrator{m: m, log: log}
}

// zapMigrateLogger adapts zap to migrate.Logger.
type zapMigrateLogger struct {
	log *zap.Logger
}

func (z zapMigrateLogger) Printf(format string, v ...any) {
	z.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (z zapMigrateLogger) Verbose() bool {
	return z.log.Core().Enabled(zap.DebugLevel)
}

// apply runs op and logs the resulting version. ErrNoChange is not an error.
func (m *Migrator) apply(op string, run func() error) error {
	m.log.Info("migration started", zap.String("op", op))
	if err := run(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("schema already current", zap.String("op", op))
			return nil
		}
		return fmt.Errorf("migrate %s: %w", op, err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.log.Info("migration finished", zap.String("op", op), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	return m.apply("up", m.m.Up)
}

// Down rolls every migration back.
func (m *Migrator) Down() error {
	return m.apply("down", m.m.Down)
}

// Steps applies n migrations; negative n rolls back.
func (m *Migrator) Steps(n int) error {
	return m.apply("steps "+strconv.Itoa(n), func() error { return m.m.Steps(n) })
}

// GoTo migrates up or down to version.
func (m *Migrator) GoTo(version uint) error {
	return m.apply(fmt.Sprintf("goto %d", version), func() error { return m.m.Migrate(version) })
}

// Version returns the applied version, 0 when nothing has run.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clears the dirty flag without
// running anything.
func (m *Migrator) Force(version int) error {
	m.log.Warn("forcing migration version", zap.Int("version", version))
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the schema.
func (m *Migrator) Drop() error {
	m.log.Warn("dropping all schema objects")
	if err := m.m.Drop(); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

// Close releases the source and the database handle.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Status pairs a migration with whether the database has applied it.
type Status struct {
	Name    string
	Version uint64
	Applied bool
}

// StatusOf reports which migrations in fsys are at or below the applied
// version.
func StatusOf(fsys fs.FS, applied uint) ([]Status, error) {
	names, err := ListMigrations(fsys)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(names))
	for _, name := range names {
		prefix, _, _ := strings.Cut(name, "_")
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %q has no numeric version", name)
		}
		out = append(out, Status{Name: name, Version: v, Applied: applied > 0 && v <= uint64(applied)})
	}
	return out, nil
}
