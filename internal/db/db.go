// Package db provides PostgreSQL storage for crawl runs, extracted portfolio
// company records, and the crawled page cache.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables this application needs if they do not
// already exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS crawl_runs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			input_path TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'running',
			seeds_total INT NOT NULL DEFAULT 0,
			companies_total INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS portfolio_companies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			run_id UUID REFERENCES crawl_runs(id) ON DELETE SET NULL,
			source_url TEXT NOT NULL,
			investor_name TEXT NOT NULL,
			investor_website TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL,
			company_website TEXT NOT NULL DEFAULT '',
			article_1 TEXT NOT NULL DEFAULT '',
			article_2 TEXT NOT NULL DEFAULT '',
			article_3 TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_companies_source_url
			ON portfolio_companies (source_url)`,
		`CREATE TABLE IF NOT EXISTS crawled_pages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			url TEXT NOT NULL UNIQUE,
			page_type TEXT,
			raw_html TEXT,
			parsed_text TEXT,
			content_hash TEXT,
			http_status INT,
			fetch_status TEXT NOT NULL DEFAULT 'success',
			error_message TEXT,
			is_permanent_failure BOOLEAN NOT NULL DEFAULT FALSE,
			retry_count INT NOT NULL DEFAULT 0,
			retry_after TIMESTAMPTZ,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ,
			last_accessed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// CreateRun creates a new crawl run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, inputPath string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO crawl_runs (input_path, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		inputPath,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a crawl run as completed with final counters
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, seedsTotal, companiesTotal int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE crawl_runs
		 SET status = $1, seeds_total = $2, companies_total = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, seedsTotal, companiesTotal, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a crawl run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, input_path, status, seeds_total, companies_total, created_at, completed_at
		 FROM crawl_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.InputPath, &run.Status, &run.SeedsTotal, &run.CompaniesTotal, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent crawl runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, input_path, status, seeds_total, companies_total, created_at, completed_at
		 FROM crawl_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.InputPath, &run.Status, &run.SeedsTotal, &run.CompaniesTotal, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
