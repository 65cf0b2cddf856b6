package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver (remote store of record)
	_ "github.com/mattn/go-sqlite3"    // SQLite driver (local durable cache)
)

// NewSQLXPostgresDB connects to the Postgres store of record.
func NewSQLXPostgresDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Postgres database: %w", err)
	}

	return db, nil
}

// NewSQLXSQLiteDB opens (creating if needed) the local cache database file.
func NewSQLXSQLiteDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %s: %w", path, err)
	}
	// The local cache is written from the request path; a single connection
	// avoids SQLITE_BUSY under concurrent commits.
	db.SetMaxOpenConns(1)
	return db, nil
}
