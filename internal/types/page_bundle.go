package types

// Anchor is a link harvested from a portfolio page. Text may come from the
// link body or, for logo-only links, from the image alt attribute.
type Anchor struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// PageBundle is the crawl collaborator's result for one seed URL: the
// rendered page plus any keyword-scoped same-domain expansion pages,
// flattened into the shapes the extraction collaborator consumes.
type PageBundle struct {
	SourceURL string
	Text      string
	Anchors   []Anchor
	Blocks    []string
	// TableChunks holds the flattened text of <table> elements, which many
	// fund sites use for portfolio listings.
	TableChunks []string
	// EmbeddedJSON holds decoded JSON found in <script> tags and SPA data
	// endpoints (Gatsby page-data and similar).
	EmbeddedJSON []any
	// DiscoveredKeywords are facet/filter terms observed on this page,
	// fed back into the keyword discovery store.
	DiscoveredKeywords []string
}
