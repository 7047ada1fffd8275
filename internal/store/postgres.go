package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend keeps the document in one JSONB row of
// marketplace_documents. Writers serialize on a session advisory lock keyed
// by the document name.
type PostgresBackend struct {
	pool *pgxpool.Pool
	name string
}

// NewPostgresBackend returns a backend for the row called name.
func NewPostgresBackend(pool *pgxpool.Pool, name string) *PostgresBackend {
	return &PostgresBackend{pool: pool, name: name}
}

// EnsureSchema creates the documents table if it is missing.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS marketplace_documents (
		   name       TEXT PRIMARY KEY,
		   body       JSONB NOT NULL,
		   updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`)
	if err != nil {
		return fmt.Errorf("create marketplace_documents: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Name() string { return "postgres:" + b.name }

func (b *PostgresBackend) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.pool.QueryRow(ctx,
		`SELECT body::text FROM marketplace_documents WHERE name = $1`,
		b.name,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	return []byte(body), nil
}

func (b *PostgresBackend) Write(ctx context.Context, data []byte) error {
	_, err := b.pool.Exec(ctx,
		`INSERT INTO marketplace_documents (name, body, updated_at)
		 VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (name) DO UPDATE
		 SET body = EXCLUDED.body, updated_at = NOW()`,
		b.name, string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Lock takes pg_advisory_lock on a dedicated pool connection, which is held
// until unlock is called.
func (b *PostgresBackend) Lock(ctx context.Context) (func(), error) {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock(hashtext($1))`, b.name); err != nil {
		conn.Release()
		return nil, fmt.Errorf("pg_advisory_lock: %w", err)
	}
	return func() {
		// The caller's ctx may already be cancelled; unlocking must still run.
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock(hashtext($1))`, b.name); err != nil {
			// A session lock survives on a pooled connection, so drop it.
			conn.Conn().Close(context.Background())
		}
		conn.Release()
	}, nil
}
