package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-scout/internal/types"
)

// InsertCompanyRecord stores one enriched portfolio company row for a run.
func (db *DB) InsertCompanyRecord(ctx context.Context, runID uuid.UUID, record types.PortfolioRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO portfolio_companies
		 (run_id, source_url, investor_name, investor_website, company_name, company_website,
		  article_1, article_2, article_3)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		runID, record.SourceURL, record.InvestorName, record.InvestorWebsite,
		record.CompanyName, record.CompanyWebsite,
		record.Articles[0], record.Articles[1], record.Articles[2],
	)
	if err != nil {
		return fmt.Errorf("failed to insert company record: %w", err)
	}
	return nil
}

// SourceURLs returns the distinct portfolio source URLs that already have
// stored company records. Used to resume interrupted runs.
func (db *DB) SourceURLs(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT source_url FROM portfolio_companies`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query source urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan source url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// ListCompanyRecordsBySource returns stored records for one portfolio page.
func (db *DB) ListCompanyRecordsBySource(ctx context.Context, sourceURL string) ([]CompanyRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, source_url, investor_name, investor_website,
		        company_name, company_website, article_1, article_2, article_3, created_at
		 FROM portfolio_companies WHERE source_url = $1 ORDER BY created_at`,
		sourceURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list company records: %w", err)
	}
	defer rows.Close()

	var records []CompanyRecord
	for rows.Next() {
		var r CompanyRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.SourceURL, &r.InvestorName, &r.InvestorWebsite,
			&r.CompanyName, &r.CompanyWebsite,
			&r.Articles[0], &r.Articles[1], &r.Articles[2], &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
