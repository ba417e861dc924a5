// Command migrate manages the storefront PostgreSQL schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"text/tabwriter"

	_ "github.com/lib/pq"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/migrations"
	"go.uber.org/zap"
)

const usage = `Storefront schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the applied version
  status                List migrations and whether each is applied
  force <version>       Set the version without running migrations
  drop -confirm         Drop every schema object
  create <name> [desc]  Scaffold a new up/down pair (needs -dir)
  list                  List available migrations

Flags:
  -dir string           Read migrations from this directory instead of the embedded set
  -log-level string     debug, info, warn or error (default: info)

Database settings come from config.toml and STORE_DATABASE_* variables.`

type command struct {
	args  int // required positional arguments after the command name
	needs bool
	run   func(env *runEnv, args []string) error
}

type runEnv struct {
	log      *zap.Logger
	dir      string
	source   fs.FS
	migrator *migration.Migrator
}

var commands = map[string]command{
	"up":   {needs: true, run: func(e *runEnv, _ []string) error { return e.migrator.Up() }},
	"down": {needs: true, run: func(e *runEnv, _ []string) error { return e.migrator.Down() }},
	"step": {args: 1, needs: true, run: func(e *runEnv, a []string) error {
		n, err := strconv.Atoi(a[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", a[0])
		}
		return e.migrator.Steps(n)
	}},
	"goto": {args: 1, needs: true, run: func(e *runEnv, a []string) error {
		v, err := strconv.ParseUint(a[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q", a[0])
		}
		return e.migrator.GoTo(uint(v))
	}},
	"force": {args: 1, needs: true, run: func(e *runEnv, a []string) error {
		v, err := strconv.Atoi(a[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", a[0])
		}
		return e.migrator.Force(v)
	}},
	"drop": {needs: true, run: func(e *runEnv, a []string) error {
		if len(a) == 0 || (a[0] != "-confirm" && a[0] != "--confirm") {
			return errors.New("drop needs -confirm")
		}
		return e.migrator.Drop()
	}},
	"version": {needs: true, run: func(e *runEnv, _ []string) error {
		v, dirty, err := e.migrator.Version()
		if err != nil {
			return err
		}
		e.log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	}},
	"status": {needs: true, run: func(e *runEnv, _ []string) error {
		v, dirty, err := e.migrator.Version()
		if err != nil {
			return err
		}
		statuses, err := migration.StatusOf(e.source, v)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
		for _, s := range statuses {
			fmt.Fprintf(w, "%d\t%s\t%t\n", s.Version, s.Name, s.Applied)
		}
		if dirty {
			fmt.Fprintf(w, "\nversion %d is dirty; fix it and run force\n", v)
		}
		return w.Flush()
	}},
	"list": {run: func(e *runEnv, _ []string) error {
		names, err := migration.ListMigrations(e.source)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}},
	"create": {args: 1, run: func(e *runEnv, a []string) error {
		if e.dir == "" {
			return errors.New("create writes files; pass -dir migrations")
		}
		desc := ""
		if len(a) > 1 {
			desc = a[1]
		}
		mf, err := migration.CreateMigration(e.dir, a[0], desc)
		if err != nil {
			return err
		}
		e.log.Info("migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
		return nil
	}},
}

func main() {
	dir := flag.String("dir", "", "migrations directory; the embedded set is used when empty")
	level := flag.String("log-level", "info", "log level")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok || len(args)-1 < cmd.args {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(logger.Config{Level: *level, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log, *dir, cmd, args[1:]); err != nil {
		log.Error("migrate failed", zap.String("command", args[0]), zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, dir string, cmd command, args []string) error {
	env := &runEnv{log: log, dir: dir, source: migrations.FS}
	if dir != "" {
		env.source = os.DirFS(dir)
	}
	if !cmd.needs {
		return cmd.run(env, args)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	if dir != "" {
		env.migrator, err = migration.New(db, dir, log)
	} else {
		env.migrator, err = migration.NewEmbedded(db, log)
	}
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := env.migrator.Close(); err != nil {
			log.Warn("close migrator", zap.Error(err))
		}
	}()

	return cmd.run(env, args)
}
