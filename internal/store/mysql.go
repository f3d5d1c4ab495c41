package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MySQLBackend keeps values in a kv_store table with a JSON column.
type MySQLBackend struct {
	db *sql.DB
}

// NewMySQLBackend wraps db and creates the kv_store table if needed.
func NewMySQLBackend(ctx context.Context, db *sql.DB) (*MySQLBackend, error) {
	_, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS kv_store (
		   store_key   VARCHAR(191) NOT NULL PRIMARY KEY,
		   store_value JSON NOT NULL,
		   updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		 )`,
	)
	if err != nil {
		return nil, fmt.Errorf("create kv_store: %w", err)
	}
	return &MySQLBackend{db: db}, nil
}

func (m *MySQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT store_value FROM kv_store WHERE store_key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv_store select: %w", err)
	}
	return value, nil
}

func (m *MySQLBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO kv_store (store_key, store_value) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE store_value = VALUES(store_value)`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("kv_store upsert: %w", err)
	}
	return nil
}
