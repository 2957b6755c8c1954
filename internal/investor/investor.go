// Package investor derives investor identity from a portfolio page URL.
package investor

import (
	"net/url"
	"strings"
)

// NameFromURL derives an investor/fund name from the portfolio URL host.
// Simple heuristic: first domain label, dashes and underscores to spaces,
// Title Case. "https://www.example-capital.com/portfolio" -> "Example Capital".
func NameFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	host := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.TrimPrefix(host, "www.")

	label := host
	if idx := strings.Index(host, "."); idx >= 0 {
		label = host[:idx]
	}

	label = strings.ReplaceAll(label, "-", " ")
	label = strings.ReplaceAll(label, "_", " ")
	return titleCase(label)
}

// WebsiteFromURL derives the investor website (scheme://host) from the
// portfolio URL. Returns "" for unparseable input.
func WebsiteFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

// titleCase uppercases the first letter of each space-separated word.
// strings.Title is deprecated and the input here is ASCII domain labels.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
