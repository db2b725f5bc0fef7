package db

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database file and verifies it with a ping.
// SQLite serialises writers, so the pool is kept to a single connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
