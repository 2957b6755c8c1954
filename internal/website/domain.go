package website

import (
	"net/url"
	"regexp"
	"strings"
)

// rejectKeywords is the fund/aggregator/social vocabulary that disqualifies
// a hostname as a company's official site. A portfolio page linking to
// "crunchbase.com/org/acme" is describing the company, not hosting it.
var rejectKeywords = []string{
	"invest", "portfolio", "fund", "capital", "partners", "equity",
	"ventures", "holdings", "group", "kkr", "blackstone", "apollo",
	"crunchbase", "pitchbook", "linkedin", "bloomberg", "wikipedia",
	"glassdoor", "angel.co", "startup", "techcrunch",
}

// corporateSuffixes are stripped from company names before the name/domain
// similarity test.
// Longer suffixes come first so "corporation" is not left as "oration"
// after "corp" is removed.
var corporateSuffixes = []string{
	"corporation", "corp", "incorporated", "inc", "limited", "ltd",
	"llc", "holdings", "group",
}

var nonWordRe = regexp.MustCompile(`[^\w\s-]`)

// IsRejectedDomain reports whether the URL's hostname matches the
// reject-keyword vocabulary. Empty URLs are rejected outright.
func IsRejectedDomain(rawURL string) bool {
	if rawURL == "" {
		return true
	}
	host := hostOf(rawURL)
	if host == "" {
		// Fall back to substring matching on the raw string, so bare
		// hints like "www.crunchbase.com/org/acme" still get caught.
		host = strings.ToLower(rawURL)
	}
	for _, kw := range rejectKeywords {
		if strings.Contains(host, kw) {
			return true
		}
	}
	return false
}

// SameHost reports whether two URLs share a hostname, ignoring case and a
// leading "www.". Unparseable input counts as a match: a candidate that
// cannot be distinguished from the portfolio page is not trustworthy.
func SameHost(a, b string) bool {
	ha, hb := hostOf(a), hostOf(b)
	if ha == "" || hb == "" {
		return true
	}
	return ha == hb
}

// MatchesCompanyName tests whether a website's domain plausibly belongs to
// the named company: the normalized name is a substring of the normalized
// domain or vice versa, or the name exactly matches the looked-up entity
// name after suffix stripping.
func MatchesCompanyName(websiteURL, companyName, entityName string) bool {
	domain := hostOf(websiteURL)
	if domain == "" {
		return false
	}

	companyClean := compressName(companyName)
	entityClean := compressName(entityName)
	domainClean := domain
	for _, tld := range []string{".com", ".net", ".org", ".io", ".co"} {
		domainClean = strings.TrimSuffix(domainClean, tld)
	}
	domainClean = strings.ReplaceAll(strings.ReplaceAll(domainClean, ".", ""), "-", "")

	if companyClean == "" {
		return false
	}
	return strings.Contains(domainClean, companyClean) ||
		strings.Contains(companyClean, domainClean) ||
		(entityClean != "" && companyClean == entityClean)
}

// OwnSite finds the company's own website inside a list of search result
// URLs by domain matching, skipping domains in the exclude set. Returns ""
// when no result matches.
func OwnSite(urls []string, companyName string, excludeDomains []string) string {
	clean := compressName(companyName)
	if clean == "" {
		return ""
	}

	for _, raw := range urls {
		domain := hostOf(raw)
		if domain == "" {
			continue
		}
		compressed := strings.ReplaceAll(strings.ReplaceAll(domain, ".", ""), "-", "")
		if !strings.Contains(compressed, clean) {
			continue
		}
		if domainContainsAny(domain, excludeDomains) {
			continue
		}
		return raw
	}
	return ""
}

// compressName lowercases a company name, drops punctuation and whitespace,
// and strips corporate suffixes.
func compressName(name string) string {
	clean := nonWordRe.ReplaceAllString(strings.ToLower(name), "")
	clean = strings.Join(strings.Fields(clean), "")
	clean = strings.ReplaceAll(clean, "-", "")
	for _, suffix := range corporateSuffixes {
		clean = strings.ReplaceAll(clean, suffix, "")
	}
	return clean
}

func domainContainsAny(domain string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(domain, n) {
			return true
		}
	}
	return false
}

// hostOf returns the lowercased hostname with a leading "www." stripped, or
// "" when the URL has no parseable host.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
