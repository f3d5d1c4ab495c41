package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/glageb/cur-vintage-jobs/internal/db"
)

// Open builds the Backend named by a STORE_URL. The returned close func
// releases any connection and is never nil.
func Open(ctx context.Context, rawURL string) (Backend, func() error, error) {
	noop := func() error { return nil }

	// mysql DSNs ("tcp(host:3306)") are not valid URLs, so only the scheme is split off.
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return nil, noop, fmt.Errorf("STORE_URL %q has no scheme", rawURL)
	}

	switch scheme {
	case "memory":
		return NewMemoryBackend(), noop, nil

	case "file":
		path := rest
		if path == "" {
			return nil, noop, fmt.Errorf("file store URL %q has no path", rawURL)
		}
		return NewFileBackend(path), noop, nil

	case "redis", "rediss":
		rdb, err := db.NewRedisClient(ctx, rawURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisBackend(rdb), rdb.Close, nil

	case "postgres", "postgresql":
		pool, err := db.NewPostgresPool(ctx, rawURL)
		if err != nil {
			return nil, noop, err
		}
		b, err := NewPostgresBackend(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return b, func() error { pool.Close(); return nil }, nil

	case "mysql":
		conn, err := db.NewMySQL(ctx, rawURL)
		if err != nil {
			return nil, noop, err
		}
		b, err := NewMySQLBackend(ctx, conn)
		if err != nil {
			conn.Close()
			return nil, noop, err
		}
		return b, conn.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported store scheme %q", scheme)
}
