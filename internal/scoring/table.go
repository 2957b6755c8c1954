// Package scoring provides deterministic URL relevance scoring for deal and
// company content. Scoring is pure: no network, no state, same input always
// yields the same integer.
package scoring

// Table holds the domain sets, path vocabularies, and score deltas for one
// scoring configuration. Historical variants of the scorer are expressed as
// alternate Table values, not parallel code paths.
type Table struct {
	BaseScore int

	// Domain suffix sets, matched against the hostname with a leading
	// "www." stripped.
	HighValueDomains []string
	LowValueDomains  []string

	// Path vocabularies, matched as substrings of the lowercased path.
	DealKeywords        []string
	NewsSegments        []string
	NonArticleSegments  []string
	NonArticleSuffixes  []string
	RootPaths           []string

	HighValueDelta  int
	LowValueDelta   int
	DealDelta       int
	NewsDelta       int
	DepthDelta      int
	RootDelta       int
	NonArticleDelta int
	SuffixDelta     int

	// MinPathSegments is the segment count at which DepthDelta applies.
	MinPathSegments int
}

// DefaultTable returns the deal-article scoring configuration: major wire
// services and deal-press outlets up, social networks and generic reference
// sites down, M&A path vocabulary up.
func DefaultTable() *Table {
	return &Table{
		BaseScore: 50,
		HighValueDomains: []string{
			"businesswire.com", "globenewswire.com",
			"reuters.com", "bloomberg.com", "ft.com", "wsj.com",
			"cnbc.com", "dealogic.com",
			"privateequitywire.co.uk",
			"pe-hub.com", "buyoutsinsider.com", "mergr.com",
			"techcrunch.com", "finsmes.com", "thesaasnews.com",
		},
		LowValueDomains: []string{
			"linkedin.com", "facebook.com", "twitter.com", "x.com",
			"instagram.com", "youtube.com", "reddit.com",
			"wikipedia.org", "google.com", "bing.com",
		},
		DealKeywords: []string{
			"acqui", "merger", "deal", "takeover", "buyout", "divest",
			"acquisition", "purchase", "transaction", "completes",
			"announces", "agreement", "press-release", "news-release",
			"press_release", "newsrelease",
			"raises", "funding", "invest", "series-a", "series-b", "series-c",
			"secures", "closes", "growth-capital", "round",
		},
		NewsSegments:       []string{"/news/", "/press/", "/media/", "/article/", "/stories/"},
		NonArticleSegments: []string{"/category/", "/tag/", "/search", "/pub/dir/", "/profile/"},
		NonArticleSuffixes: []string{".pdf", ".jpg", ".png", ".gif", ".txt", ".csv", ".zip"},
		RootPaths:          []string{"", "/", "/index.html", "/index.htm"},

		HighValueDelta:  30,
		LowValueDelta:   -40,
		DealDelta:       20,
		NewsDelta:       10,
		DepthDelta:      5,
		RootDelta:       -30,
		NonArticleDelta: -20,
		SuffixDelta:     -15,
		MinPathSegments: 2,
	}
}

// LinkSignalTable returns the legacy link-finder configuration, kept as a
// versioned alternate of the default table. It carries no domain sets and a
// narrower deal vocabulary weighted toward completed-transaction wording.
func LinkSignalTable() *Table {
	t := DefaultTable()
	t.HighValueDomains = nil
	t.LowValueDomains = nil
	t.DealKeywords = []string{
		"news", "transaction", "deal", "acquisition", "acquired", "merger",
	}
	return t
}
