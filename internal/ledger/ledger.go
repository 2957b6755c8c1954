// Package ledger reconstructs run progress from the output sink so re-runs
// are idempotent: seeds whose source URL already appears in the sink are
// never reprocessed.
package ledger

import (
	"context"
	"fmt"
)

// Source lists the source URLs already recorded in a sink.
type Source interface {
	SourceURLs(ctx context.Context) ([]string, error)
}

// Ledger is the set of completed seed URLs, read once at startup. It is
// never mutated afterward; the sink itself is the source of truth for
// progress made during the run.
type Ledger struct {
	completed map[string]struct{}
}

// Load reads completed source URLs from every given source and unions them.
// A source returning an error aborts the load; tolerating a missing sink is
// the source's job (an empty sink is simply empty).
func Load(ctx context.Context, sources ...Source) (*Ledger, error) {
	completed := make(map[string]struct{})
	for _, src := range sources {
		urls, err := src.SourceURLs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load resume ledger: %w", err)
		}
		for _, u := range urls {
			completed[u] = struct{}{}
		}
	}
	return &Ledger{completed: completed}, nil
}

// Completed reports whether the seed URL was already fully processed.
func (l *Ledger) Completed(sourceURL string) bool {
	_, ok := l.completed[sourceURL]
	return ok
}

// Len returns the number of completed seeds.
func (l *Ledger) Len() int {
	return len(l.completed)
}
