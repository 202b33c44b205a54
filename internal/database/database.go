package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Supported values for the database.driver setting.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// InitDB opens a connection for driver, verifies it and applies the schema.
func InitDB(driver, dataSourceName string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// Each new connection to ":memory:" would be a separate, empty database.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	if err = Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if db.DriverName() == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
