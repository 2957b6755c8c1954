package providers

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleSearch is a Searcher backed by the Google Custom Search API.
type GoogleSearch struct {
	svc   *customsearch.Service
	cx    string
	retry RetryPolicy
}

// NewGoogleSearch creates a Custom Search client for the given API key and
// search engine ID.
func NewGoogleSearch(ctx context.Context, apiKey, cx string, retry RetryPolicy) (*GoogleSearch, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearch{svc: svc, cx: cx, retry: retry}, nil
}

// Search returns up to limit result URLs for the query. Rate limits are
// retried per the policy; exhaustion surfaces the last error.
func (g *GoogleSearch) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	var resp *customsearch.Search
	err := g.retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = g.svc.Cse.List().Cx(g.cx).Q(query).Num(int64(limit)).Context(ctx).Do()
		if callErr != nil {
			return classify("customsearch", callErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("custom search failed for %q: %w", query, err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		results = append(results, Result{URL: item.Link, Name: item.Title})
	}
	return results, nil
}
