package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/llm"
)

// newLogger builds the CLI logger: human-readable development output in
// verbose mode, JSON production output otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// readSeedCSV reads seed portfolio URLs from the first column of a CSV file.
// Rows whose first column does not start with http:// or https:// are
// skipped, which also drops any header row.
func readSeedCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse input CSV: %w", err)
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		u := strings.TrimSpace(rec[0])
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls, nil
}

// tierFromString maps a config tier name to an llm.ModelTier, defaulting to
// the standard tier.
func tierFromString(tier string) llm.ModelTier {
	switch tier {
	case "lite":
		return llm.TierLite
	case "advanced":
		return llm.TierAdvanced
	default:
		return llm.TierStandard
	}
}
