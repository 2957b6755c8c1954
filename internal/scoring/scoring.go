package scoring

import (
	"net/url"
	"strings"
)

// Score rates a URL's likelihood of being deal/company article content.
// Higher is better. Each signal category applies at most once; malformed
// URLs score the unmodified baseline rather than erroring.
func (t *Table) Score(rawURL string) int {
	score := t.BaseScore

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return score
	}

	domain := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	path := strings.ToLower(parsed.Path)

	if domainHasSuffix(domain, t.HighValueDomains) {
		score += t.HighValueDelta
	}
	if domainHasSuffix(domain, t.LowValueDomains) {
		score += t.LowValueDelta
	}
	if containsAny(path, t.DealKeywords) {
		score += t.DealDelta
	}
	if isRootPath(path, t.RootPaths) {
		score += t.RootDelta
	}
	if containsAny(path, t.NonArticleSegments) {
		score += t.NonArticleDelta
	}
	if countSegments(path) >= t.MinPathSegments {
		score += t.DepthDelta
	}
	if hasSuffixAny(path, t.NonArticleSuffixes) {
		score += t.SuffixDelta
	}
	if containsAny(path, t.NewsSegments) {
		score += t.NewsDelta
	}

	return score
}

// domainHasSuffix reports whether domain ends with any member of the set.
// Suffix matching covers subdomains: "uk.reuters.com" matches "reuters.com".
func domainHasSuffix(domain string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(domain, s) {
			return true
		}
	}
	return false
}

func containsAny(path string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(path, n) {
			return true
		}
	}
	return false
}

func hasSuffixAny(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

func isRootPath(path string, roots []string) bool {
	for _, r := range roots {
		if path == r {
			return true
		}
	}
	return false
}

func countSegments(path string) int {
	count := 0
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			count++
		}
	}
	return count
}
