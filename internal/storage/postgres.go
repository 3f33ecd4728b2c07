package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSlot stores the snapshot in a one-row table on a Postgres
// server, for households that point the catalogue at a shared database
// instead of the local file.
type PostgresSlot struct {
	pool *pgxpool.Pool
}

// NewPostgresSlot connects and ensures the snapshot table exists
func NewPostgresSlot(ctx context.Context, connString string) (*PostgresSlot, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresSlot{pool: pool}, nil
}

// ReadSnapshot returns the stored snapshot document
func (s *PostgresSlot) ReadSnapshot() ([]byte, error) {
	var payload string
	err := s.pool.QueryRow(context.Background(),
		`SELECT payload FROM snapshots WHERE key = $1`, SlotKey).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// WriteSnapshot overwrites the slot
func (s *PostgresSlot) WriteSnapshot(data []byte) error {
	_, err := s.pool.Exec(context.Background(), `
		INSERT INTO snapshots (key, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		SlotKey, string(data),
	)
	return err
}

// Close releases the connection pool
func (s *PostgresSlot) Close() error {
	s.pool.Close()
	return nil
}
