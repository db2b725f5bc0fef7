package kv

import (
	"context"
	"errors"
	"io"
	"log"

	"paintland/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres stores entries in the kv_entries table created by the migrations.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	const q = `
SELECT value
FROM kv_entries
WHERE namespace = $1 AND key = $2
`
	var value []byte
	err := r.pool.QueryRow(ctx, q, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("kv repo: get namespace=%s key=%s error=%v", namespace, key, err)
		return nil, err
	}
	return value, nil
}

func (r *postgresRepo) Put(ctx context.Context, namespace, key string, value []byte) error {
	const q = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, namespace, key, value); err != nil {
		r.logger.Printf("kv repo: put namespace=%s key=%s bytes=%d error=%v", namespace, key, len(value), err)
		return err
	}
	r.logger.Printf("kv repo: put namespace=%s key=%s bytes=%d", namespace, key, len(value))
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, namespace, key string) error {
	const q = `
DELETE FROM kv_entries
WHERE namespace = $1 AND key = $2
`
	if _, err := r.pool.Exec(ctx, q, namespace, key); err != nil {
		r.logger.Printf("kv repo: delete namespace=%s key=%s error=%v", namespace, key, err)
		return err
	}
	return nil
}
