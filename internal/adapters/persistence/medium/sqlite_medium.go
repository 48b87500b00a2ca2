package medium

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS record_blobs (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteMedium implements Medium over a SQLite handle
type SQLiteMedium struct {
	sqlDB *sql.DB
}

// NewSQLiteMedium creates the record_blobs table if needed and returns the medium
func NewSQLiteMedium(ctx context.Context, sqlDB *sql.DB) (*SQLiteMedium, error) {
	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteMedium{sqlDB: sqlDB}, nil
}

func (m *SQLiteMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := m.sqlDB.QueryRowContext(ctx, `SELECT payload FROM record_blobs WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(payload), true, nil
}

func (m *SQLiteMedium) Put(ctx context.Context, key string, value []byte) error {
	_, err := m.sqlDB.ExecContext(ctx, `
		INSERT INTO record_blobs (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().UnixMilli())
	return err
}

func (m *SQLiteMedium) Delete(ctx context.Context, key string) error {
	_, err := m.sqlDB.ExecContext(ctx, `DELETE FROM record_blobs WHERE key = ?`, key)
	return err
}
