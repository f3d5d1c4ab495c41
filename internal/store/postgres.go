package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend keeps values in a kv_store table, one JSONB row per key.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend wraps pool and creates the kv_store table if needed.
func NewPostgresBackend(ctx context.Context, pool *pgxpool.Pool) (*PostgresBackend, error) {
	_, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS kv_store (
		   store_key   TEXT PRIMARY KEY,
		   store_value JSONB NOT NULL,
		   updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`,
	)
	if err != nil {
		return nil, fmt.Errorf("create kv_store: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT store_value::text FROM kv_store WHERE store_key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv_store select: %w", err)
	}
	return value, nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_store (store_key, store_value, updated_at)
		 VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (store_key) DO UPDATE
		 SET store_value = EXCLUDED.store_value,
		     updated_at  = NOW()`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("kv_store upsert: %w", err)
	}
	return nil
}
