package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	"paintland/internal/domain"
)

type sqliteRepo struct {
	db     *sql.DB
	logger *log.Logger
}

// NewSQLite stores entries in a single SQLite file. The table is created if
// it does not exist yet.
func NewSQLite(ctx context.Context, db *sql.DB, logger *log.Logger) (Repository, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	const ddl = `
CREATE TABLE IF NOT EXISTS kv_entries (
    namespace TEXT NOT NULL,
    key TEXT NOT NULL,
    value BLOB NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (namespace, key)
)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create kv_entries: %w", err)
	}
	return &sqliteRepo{db: db, logger: logger}, nil
}

func (r *sqliteRepo) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("kv repo: get namespace=%s key=%s error=%v", namespace, key, err)
		return nil, err
	}
	return value, nil
}

func (r *sqliteRepo) Put(ctx context.Context, namespace, key string, value []byte) error {
	const q = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (namespace, key) DO UPDATE
SET value = excluded.value,
    updated_at = excluded.updated_at
`
	if _, err := r.db.ExecContext(ctx, q, namespace, key, value); err != nil {
		r.logger.Printf("kv repo: put namespace=%s key=%s bytes=%d error=%v", namespace, key, len(value), err)
		return err
	}
	return nil
}

func (r *sqliteRepo) Delete(ctx context.Context, namespace, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE namespace = ? AND key = ?`, namespace, key); err != nil {
		r.logger.Printf("kv repo: delete namespace=%s key=%s error=%v", namespace, key, err)
		return err
	}
	return nil
}
