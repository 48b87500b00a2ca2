package medium

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS record_blobs (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresMedium implements Medium over a pgx pool
type PostgresMedium struct {
	pool *pgxpool.Pool
}

// NewPostgresMedium creates the record_blobs table if needed and returns the medium
func NewPostgresMedium(ctx context.Context, pool *pgxpool.Pool) (*PostgresMedium, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("exec migration: %w", err)
	}
	return &PostgresMedium{pool: pool}, nil
}

func (m *PostgresMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := m.pool.QueryRow(ctx, `SELECT payload FROM record_blobs WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(payload), true, nil
}

func (m *PostgresMedium) Put(ctx context.Context, key string, value []byte) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO record_blobs (key, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		key, string(value))
	return err
}

func (m *PostgresMedium) Delete(ctx context.Context, key string) error {
	_, err := m.pool.Exec(ctx, `DELETE FROM record_blobs WHERE key = $1`, key)
	return err
}
