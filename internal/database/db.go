package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool the application uses. pgxmock's pool
// interface satisfies it, which keeps the SQL layer testable without a server.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type DB struct {
	Pool Pool
}

var (
	connectMu sync.Mutex
	conn      *DB
)

// Connect opens the shared database handle. Repeated calls within one process
// return the cached handle; the mutex also serializes concurrent first calls so
// at most one connect attempt is ever in flight. A failed attempt leaves
// nothing cached, so the next call retries from scratch.
func Connect(ctx context.Context, url string) (*DB, error) {
	connectMu.Lock()
	defer connectMu.Unlock()

	if conn != nil {
		return conn, nil
	}

	db, err := New(ctx, url)
	if err != nil {
		return nil, err
	}

	conn = db
	return conn, nil
}

// New always dials a fresh pool. Prefer Connect outside of tests.
func New(ctx context.Context, url string) (*DB, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	connectMu.Lock()
	if conn == db {
		conn = nil
	}
	connectMu.Unlock()

	db.Pool.Close()
}
