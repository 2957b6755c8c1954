package providers

import (
	"context"
	"fmt"

	"google.golang.org/api/kgsearch/v1"
	"google.golang.org/api/option"
)

// KnowledgeGraph is an EntityLookup backed by the Google Knowledge Graph
// Search API. Each entity can yield up to two URL candidates: the entity URL
// and the detailed-description URL.
type KnowledgeGraph struct {
	svc   *kgsearch.Service
	retry RetryPolicy
}

// NewKnowledgeGraph creates a Knowledge Graph client.
func NewKnowledgeGraph(ctx context.Context, apiKey string, retry RetryPolicy) (*KnowledgeGraph, error) {
	svc, err := kgsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create kgsearch service: %w", err)
	}
	return &KnowledgeGraph{svc: svc, retry: retry}, nil
}

// Lookup returns website candidates for the query, preserving the API's
// result order. Entities without any URL are skipped.
func (k *KnowledgeGraph) Lookup(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}

	var resp *kgsearch.SearchResponse
	err := k.retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = k.svc.Entities.Search().Query(query).Limit(int64(limit)).Context(ctx).Do()
		if callErr != nil {
			return classify("kgsearch", callErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge graph lookup failed for %q: %w", query, err)
	}

	var results []Result
	for _, element := range resp.ItemListElement {
		item, ok := element.(map[string]any)
		if !ok {
			continue
		}
		entity, ok := item["result"].(map[string]any)
		if !ok {
			continue
		}
		name, _ := entity["name"].(string)

		for _, candidate := range entityURLs(entity) {
			results = append(results, Result{URL: candidate, Name: name})
		}
	}
	return results, nil
}

// entityURLs pulls the entity URL and the detailed-description URL, in that
// trust order.
func entityURLs(entity map[string]any) []string {
	var urls []string
	if u, _ := entity["url"].(string); u != "" {
		urls = append(urls, u)
	}
	if desc, ok := entity["detailedDescription"].(map[string]any); ok {
		if u, _ := desc["url"].(string); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
