package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at INTEGER NOT NULL
) WITHOUT ROWID;`

// SQLiteMedium backs the offline layer with an embedded SQLite file,
// the on-device analog of a browser or mobile local store. A single
// kv_entries table holds every namespaced key.
type SQLiteMedium struct {
	db *sql.DB
}

// NewSQLiteMedium opens (creating if needed) the database at path and
// ensures the schema exists. Use ":memory:" for an ephemeral store.
func NewSQLiteMedium(path string, logger *zap.Logger) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	// The driver is safe for concurrent use only through one connection
	// when the database is a plain file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure kv_entries schema: %w", err)
	}
	logger.Info("opened sqlite store", zap.String("path", path))
	return &SQLiteMedium{db: db}, nil
}

// Get returns the stored value, or ErrNotFound.
func (m *SQLiteMedium) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores the value, overwriting any previous one.
func (m *SQLiteMedium) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx, `
        INSERT INTO kv_entries (key, value, updated_at)
        VALUES (?, ?, unixepoch('subsec') * 1000)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

// Delete removes the key.
func (m *SQLiteMedium) Delete(ctx context.Context, key string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

// Keys lists stored keys beginning with prefix.
func (m *SQLiteMedium) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT key FROM kv_entries WHERE key >= ? AND key < ? ORDER BY key`,
		prefix, prefix+"\xff")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Ping verifies the database handle is usable.
func (m *SQLiteMedium) Ping(ctx context.Context) error {
	if m == nil || m.db == nil {
		return errors.New("sqlite store not configured")
	}
	return m.db.PingContext(ctx)
}

// Close closes the database handle.
func (m *SQLiteMedium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}
