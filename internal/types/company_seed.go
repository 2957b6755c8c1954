// Package types defines the shared data model for the portfolio enrichment pipeline.
package types

import "strings"

// CompanySeed is a candidate company extracted from a portfolio page.
// Website and Keywords are filled in by the resolver and keyword matcher
// before the seed is turned into a PortfolioRecord.
type CompanySeed struct {
	SourceURL    string   `json:"source_url"`
	InvestorName string   `json:"investor_name"`
	CompanyName  string   `json:"company_name"`
	Website      string   `json:"company_website"`
	Keywords     []string `json:"keywords,omitempty"`
}

// NormalizeWebsite ensures an https:// prefix on extracted website hints.
// Empty input stays empty; http:// is upgraded to https://.
func NormalizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") {
		return "https://" + strings.TrimPrefix(raw, "http://")
	}
	if strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
