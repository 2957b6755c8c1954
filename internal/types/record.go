package types

// MaxArticles is the number of article slots on an output record.
const MaxArticles = 3

// PortfolioRecord is the final persisted shape: one row per
// (source URL, company name) pair, appended to the CSV mirror and,
// when configured, the Postgres sink.
type PortfolioRecord struct {
	SourceURL       string
	InvestorName    string
	InvestorWebsite string
	CompanyName     string
	CompanyWebsite  string
	Articles        [MaxArticles]string
}

// ScoredCandidate is a transient article candidate with its relevance score.
// Only the selected top candidates survive into a PortfolioRecord.
type ScoredCandidate struct {
	URL   string `json:"url"`
	Score int    `json:"score"`
}
