package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the user_version stamped on SQLite databases.
const SchemaVersion = 1

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore is the structured primary Backend: a single table inside a
// single database file.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// table exists at SchemaVersion.
func OpenSQLite(ctx context.Context, path, table string) (*SQLiteStore, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("sqlite: invalid table name %q", table)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("sqlite: creating directory: %w", err)
	}
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, table: table}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("sqlite: reading schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("sqlite: schema version %d is newer than supported %d", version, SchemaVersion)
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`, s.table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: creating table %s: %w", s.table, err)
	}
	if version < SchemaVersion {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d;", SchemaVersion)); err != nil {
			return fmt.Errorf("sqlite: stamping schema version: %w", err)
		}
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT v FROM %s WHERE k = ?", s.table), key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	q := fmt.Sprintf(`INSERT INTO %s (k, v) VALUES (?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v`, s.table)
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("sqlite: set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE k = ?", s.table), key); err != nil {
		return fmt.Errorf("sqlite: remove %q: %w", key, err)
	}
	return nil
}

// Clear removes every key.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}
	return nil
}

// Keys lists every key in ascending order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT k FROM %s ORDER BY k", s.table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("sqlite: scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: keys: %w", err)
	}
	return keys, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
