package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// RemoteOptions configures the Postgres connection pool.
type RemoteOptions struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	PingTimeout  time.Duration
}

// OpenRemote connects to the hosted Postgres database through pgx.
func OpenRemote(ctx context.Context, opts RemoteOptions) (*bun.DB, error) {
	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" {
		return nil, errors.New("store: remote dsn is required")
	}
	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open remote: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(opts.MaxLifetime)
	}

	db := bun.NewDB(sqldb, pgdialect.New(), bun.WithDiscardUnknownColumns())
	if err := ping(ctx, db, opts.PingTimeout); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping remote: %w", err)
	}
	return db, nil
}

// OpenLocal opens (creating if needed) the SQLite file used for local
// development and tests. Writes are serialized on a single connection.
func OpenLocal(ctx context.Context, path string) (*bun.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: local path is required")
	}
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?_fk=1&_busy_timeout=5000"
	}
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open local: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New(), bun.WithDiscardUnknownColumns())
	if err := ping(ctx, db, 0); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping local: %w", err)
	}
	return db, nil
}

func ping(ctx context.Context, db *bun.DB, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return db.PingContext(ctx)
}
