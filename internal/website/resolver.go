// Package website resolves a company name (and any inline hint from the
// portfolio page) into a validated official website. The fallback chain
// encodes a trust hierarchy: an explicit hint from the page is trusted most,
// then verified structured data, then free-text search. A candidate on the
// portfolio page's own host is always disqualified — it would just echo the
// portfolio page, not the company.
package website

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/providers"
)

// Unknown is the explicit marker for an unresolved website. A failed
// resolution never fabricates a URL.
const Unknown = ""

// Resolver runs the ordered fallback chain. Either provider may be nil, in
// which case that step is skipped.
type Resolver struct {
	entity providers.EntityLookup
	search providers.Searcher
	logger *zap.Logger
}

// NewResolver creates a Resolver over the given providers.
func NewResolver(entity providers.EntityLookup, search providers.Searcher, logger *zap.Logger) *Resolver {
	return &Resolver{entity: entity, search: search, logger: logger}
}

// Resolve returns the company's official website or Unknown. Provider
// failures degrade to the next step in the chain; they never abort the
// company.
func (r *Resolver) Resolve(ctx context.Context, companyName, inlineHint, portfolioURL string) string {
	// Step 1: trust an inline hint from the page itself, if it survives
	// the reject checks.
	if inlineHint != "" && r.acceptable(inlineHint, portfolioURL) {
		return inlineHint
	}

	// Step 2: structured entity lookup, verified by name/domain similarity.
	if site := r.fromEntityLookup(ctx, companyName, portfolioURL); site != Unknown {
		return site
	}

	// Step 3: free-text search, first acceptable result wins.
	if site := r.fromSearch(ctx, companyName, portfolioURL); site != Unknown {
		return site
	}

	return Unknown
}

// acceptable applies the two checks every candidate must pass regardless of
// where it came from.
func (r *Resolver) acceptable(candidate, portfolioURL string) bool {
	return !IsRejectedDomain(candidate) && !SameHost(candidate, portfolioURL)
}

func (r *Resolver) fromEntityLookup(ctx context.Context, companyName, portfolioURL string) string {
	if r.entity == nil || companyName == "" {
		return Unknown
	}

	candidates, err := r.entity.Lookup(ctx, companyName, 5)
	if err != nil {
		r.logger.Warn("entity lookup failed",
			zap.String("company", companyName),
			zap.Error(err))
		return Unknown
	}

	for _, c := range candidates {
		if !r.acceptable(c.URL, portfolioURL) {
			continue
		}
		if !MatchesCompanyName(c.URL, companyName, c.Name) {
			continue
		}
		r.logger.Debug("entity lookup verified website",
			zap.String("company", companyName),
			zap.String("website", c.URL))
		return c.URL
	}
	return Unknown
}

func (r *Resolver) fromSearch(ctx context.Context, companyName, portfolioURL string) string {
	if r.search == nil || companyName == "" {
		return Unknown
	}

	results, err := r.search.Search(ctx, companyName, 5)
	if err != nil {
		r.logger.Warn("website search failed",
			zap.String("company", companyName),
			zap.Error(err))
		return Unknown
	}

	for _, res := range results {
		if r.acceptable(res.URL, portfolioURL) {
			return res.URL
		}
	}
	return Unknown
}
