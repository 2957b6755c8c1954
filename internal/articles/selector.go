// Package articles finds deal and press coverage for a portfolio company.
// Search results are filtered (paywalled databases, wire services, the
// company's own site) and then ranked by the deterministic URL relevance
// score, keeping the top candidates.
package articles

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/providers"
	"github.com/jonathan/portfolio-scout/internal/scoring"
	"github.com/jonathan/portfolio-scout/internal/types"
	"github.com/jonathan/portfolio-scout/internal/website"
)

// blockedDomains are sources that never yield a readable article: paywalled
// deal databases, press-release wire services, and the UK companies register.
var blockedDomains = []string{
	"pitchbook.com",
	"prnewswire.com",
	"prweb.com",
	"preqin.com",
	"find-and-update.company-information.service.gov.uk",
}

// Selector queries a search provider and ranks the results.
type Selector struct {
	search providers.Searcher
	table  *scoring.Table
	logger *zap.Logger
}

// NewSelector creates a Selector. A nil table falls back to the default
// scoring table.
func NewSelector(search providers.Searcher, table *scoring.Table, logger *zap.Logger) *Selector {
	if table == nil {
		table = scoring.DefaultTable()
	}
	return &Selector{search: search, table: table, logger: logger}
}

// Select returns up to types.MaxArticles article URLs about the company,
// best first. The company's own website (matched by name or by the resolved
// companyWebsite host) never counts as coverage. Both names empty means
// there is nothing to search for and yields no articles.
func (s *Selector) Select(ctx context.Context, companyName, investorName, companyWebsite string) ([]string, error) {
	query := buildQuery(companyName, investorName)
	if query == "" || s.search == nil {
		return nil, nil
	}

	results, err := s.search.Search(ctx, query, 10)
	if err != nil {
		return nil, fmt.Errorf("article search failed for %q: %w", query, err)
	}

	seen := make(map[string]bool)
	var candidates []types.ScoredCandidate
	for _, res := range results {
		candidate := strings.TrimSpace(res.URL)
		if candidate == "" || seen[candidate] {
			continue
		}
		seen[candidate] = true

		if isBlocked(candidate) {
			continue
		}
		if isOwnSite(candidate, companyName, companyWebsite) {
			s.logger.Debug("skipping company's own site",
				zap.String("company", companyName),
				zap.String("url", candidate))
			continue
		}

		candidates = append(candidates, types.ScoredCandidate{
			URL:   candidate,
			Score: s.table.Score(candidate),
		})
	}

	// Stable sort keeps the provider's order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	articles := make([]string, 0, types.MaxArticles)
	for _, c := range candidates {
		if len(articles) == types.MaxArticles {
			break
		}
		articles = append(articles, c.URL)
	}
	return articles, nil
}

// buildQuery joins the non-empty name parts.
func buildQuery(companyName, investorName string) string {
	var parts []string
	if strings.TrimSpace(companyName) != "" {
		parts = append(parts, strings.TrimSpace(companyName))
	}
	if strings.TrimSpace(investorName) != "" {
		parts = append(parts, strings.TrimSpace(investorName))
	}
	return strings.Join(parts, " ")
}

func isBlocked(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return true
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	for _, blocked := range blockedDomains {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}
	return false
}

// isOwnSite reports whether the candidate is the company's own website,
// either by sharing a host with the resolved website or by the domain
// containing the company name.
func isOwnSite(candidate, companyName, companyWebsite string) bool {
	if companyWebsite != "" && website.SameHost(candidate, companyWebsite) {
		return true
	}
	return website.OwnSite([]string{candidate}, companyName, nil) != ""
}
