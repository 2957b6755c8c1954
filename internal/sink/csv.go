// Package sink provides the durable output destinations for portfolio
// records: a CSV mirror that doubles as the resume source of truth, and the
// Postgres sink in internal/db.
package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Columns is the fixed output schema, in column order.
var Columns = []string{
	"source_url",
	"investor_name",
	"investor_website",
	"company_name",
	"company_website",
	"article_1",
	"article_2",
	"article_3",
}

// CSV appends portfolio records to a CSV file, writing the header once when
// the file is created. Appends are flushed per record so a crash loses at
// most the row being written.
type CSV struct {
	path string
	mu   sync.Mutex
}

// NewCSV creates a CSV sink for the given path. The file is created lazily
// on first append.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the output file path.
func (c *CSV) Path() string {
	return c.path
}

// Append writes one record. The context is accepted for interface symmetry
// with the database sink; file appends are not cancellable.
func (c *CSV) Append(_ context.Context, row []string) error {
	if len(row) != len(Columns) {
		return fmt.Errorf("row has %d fields, want %d", len(row), len(Columns))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.Flush()
	return w.Error()
}

// SourceURLs reads the distinct source_url values already present in the
// file. A missing file means no prior progress and returns an empty list.
func (c *CSV) SourceURLs(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short historical rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	seen := make(map[string]struct{})
	var urls []string
	for i, rec := range records {
		if i == 0 || len(rec) == 0 {
			continue // header
		}
		u := rec[0]
		if u == "" {
			continue
		}
		if _, ok := seen[u]; !ok {
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return urls, nil
}
