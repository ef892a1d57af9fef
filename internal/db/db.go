// Package db provides PostgreSQL storage for scraped job records.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the job_records table if it does not exist. The non-empty
// requirements_text invariant is enforced at the store level.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS job_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			url TEXT NOT NULL,
			job_title TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			requirements_text TEXT NOT NULL CHECK (requirements_text <> ''),
			label_skill TEXT NOT NULL DEFAULT '',
			url_lowongan TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate job_records: %w", err)
	}

	// Repeated scrapes of the same url may accumulate duplicates; the index
	// is for listing and search, not uniqueness.
	_, err = db.pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS idx_job_records_created_at ON job_records (created_at DESC)`)
	if err != nil {
		return fmt.Errorf("failed to create job_records index: %w", err)
	}

	return nil
}
