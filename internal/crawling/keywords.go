package crawling

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-scout/internal/types"
)

// facetParams are the query-string parameters that portfolio pages use for
// sector/stage filtering. Their values are the vocabulary of the fund's own
// taxonomy and feed the keyword discovery store.
var facetParams = map[string]bool{
	"category":   true,
	"categories": true,
	"sector":     true,
	"sectors":    true,
	"industry":   true,
	"industries": true,
	"stage":      true,
	"stages":     true,
	"tag":        true,
	"tags":       true,
	"type":       true,
	"focus":      true,
	"filter":     true,
	"theme":      true,
	"vertical":   true,
}

var keywordCleaner = regexp.MustCompile(`[^a-z0-9-]+`)
var digitsOnly = regexp.MustCompile(`^[0-9-]+$`)

// DiscoverKeywords mines facet/filter terms from anchor hrefs. Terms come
// from the values of known filter parameters, normalized to lowercase
// slug form and deduplicated.
func DiscoverKeywords(anchors []types.Anchor) []string {
	seen := make(map[string]bool)
	var terms []string

	for _, a := range anchors {
		u, err := url.Parse(a.Href)
		if err != nil {
			continue
		}
		for param, values := range u.Query() {
			if !facetParams[strings.ToLower(param)] {
				continue
			}
			for _, value := range values {
				for _, term := range splitFacetValue(value) {
					if term == "" || seen[term] {
						continue
					}
					seen[term] = true
					terms = append(terms, term)
				}
			}
		}
	}

	sort.Strings(terms)
	return terms
}

// splitFacetValue breaks a filter value like "Fintech+Insurtech" or
// "health, climate" into normalized terms.
func splitFacetValue(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == '+' || r == ',' || r == ';' || r == '|' || r == ' '
	})

	var terms []string
	for _, f := range fields {
		term := keywordCleaner.ReplaceAllString(strings.ToLower(f), "")
		term = strings.Trim(term, "-")
		if len(term) < 3 || digitsOnly.MatchString(term) {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}
