// Package db provides sqlite persistence for scan snapshots and scene
// calibrations, with schema management through golang-migrate.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sql connection so stores and migrations share one handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// applies the connection pragmas the service relies on.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers (transform endpoints) unblocked while a scan
	// ingest is writing; busy_timeout covers the brief checkpoint
	// windows.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	return &DB{sqlDB}, nil
}
