// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Schema creates the preferences table.
const Schema = `
CREATE TABLE IF NOT EXISTS preferences (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (scope, key)
);
CREATE INDEX IF NOT EXISTS idx_preferences_updated ON preferences(updated_at);
`

// =============================================================================
// DATABASE
// =============================================================================

// DB is the SQLite database holding every visitor's preferences.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// OpenDB opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenDB(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite has one writer; a single connection also keeps :memory: shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Scope returns the store for one scope, usually a visitor id.
func (d *DB) Scope(scope string) *SQLiteStore {
	return &SQLiteStore{db: d, scope: scope}
}

// Prune deletes scopes untouched since before cutoff and returns the
// number of rows removed.
func (d *DB) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE scope IN (
			SELECT scope FROM preferences GROUP BY scope HAVING MAX(updated_at) < ?
		)`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune preferences: %w", err)
	}
	return res.RowsAffected()
}

// HasScope reports whether any preference is stored under scope.
func (d *DB) HasScope(ctx context.Context, scope string) (bool, error) {
	var found int
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM preferences WHERE scope = ?)`, scope).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("lookup scope: %w", err)
	}
	return found == 1, nil
}

// Scopes returns the number of distinct scopes stored.
func (d *DB) Scopes(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT scope) FROM preferences`).Scan(&n)
	return n, err
}

// =============================================================================
// SQLITE STORE
// =============================================================================

// SQLiteStore is one scope of the preferences table.
type SQLiteStore struct {
	db    *DB
	scope string
}

// Scope returns the store's scope.
func (s *SQLiteStore) Scope() string {
	return s.scope
}

// Get returns the raw value for key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.db.QueryRow(
		`SELECT value FROM preferences WHERE scope = ? AND key = ?`,
		s.scope, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.db.Exec(`
		INSERT INTO preferences (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.scope, key, value, s.db.now().Unix())
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
