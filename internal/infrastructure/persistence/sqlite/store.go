// Package sqlite is a single-file implementation of tasks.Repository on
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/rezkam/taskmate/internal/application/tasks"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DBConfig holds SQLite database configuration.
type DBConfig struct {
	DSN         string // sqlite://path, file:path or a plain path
	AutoMigrate bool   // Apply embedded migrations after opening
}

// Store provides the SQLite implementation of tasks.Repository.
type Store struct {
	db *sql.DB
}

var _ tasks.Repository = (*Store)(nil)

// DataSource converts a configured DSN to a driver data source name.
func DataSource(dsn string) string {
	return strings.TrimPrefix(dsn, "sqlite://")
}

// NewStore opens the database and optionally migrates it.
func NewStore(ctx context.Context, cfg DBConfig) (*Store, error) {
	db, err := sql.Open("sqlite", DataSource(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serialises writers and keeps per-connection pragmas.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if cfg.AutoMigrate {
		if err := runMigrations(ctx, db); err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func closeDB(ctx context.Context, db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.ErrorContext(ctx, "Failed to close database", "error", err)
	}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports primary key and unique constraint failures,
// with or without extended result codes.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}
