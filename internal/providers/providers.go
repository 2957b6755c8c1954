// Package providers wraps the external search and entity-lookup services
// behind small interfaces, with an explicit retry policy for rate limits and
// transient network failures.
package providers

import "context"

// Result is one candidate returned by a provider.
type Result struct {
	URL  string
	Name string
}

// Searcher is a general web search provider.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// EntityLookup is a structured knowledge-graph provider.
type EntityLookup interface {
	Lookup(ctx context.Context, query string, limit int) ([]Result, error)
}
