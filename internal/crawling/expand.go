package crawling

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// ExpandOptions controls keyword-scoped same-domain expansion of a
// portfolio seed page.
type ExpandOptions struct {
	MaxPages  int
	MaxDepth  int
	Timeout   time.Duration
	UserAgent string
}

// DefaultExpandOptions returns the expansion limits used in production.
// Expansion exists to pick up paginated or faceted portfolio views, not to
// mirror the site, so the caps are deliberately small.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{
		MaxPages:  8,
		MaxDepth:  2,
		Timeout:   15 * time.Second,
		UserAgent: "Mozilla/5.0 (compatible; PortfolioScout/1.0)",
	}
}

// ExpandedPage is one same-domain page discovered during expansion.
type ExpandedPage struct {
	URL  string
	HTML string
}

// baseExpandTerms always qualify a link for expansion, regardless of what the
// keyword store has learned for this domain.
var baseExpandTerms = []string{"portfolio", "companies", "investments", "page"}

// ExpandPortfolio follows same-domain links from a seed portfolio page whose
// URLs contain one of the scope terms (facet keywords learned for this
// domain, plus the built-in portfolio terms). The seed page itself is not
// re-fetched by the caller's account: it appears in the results like any
// other visited page and callers skip it by URL.
func ExpandPortfolio(ctx context.Context, seedURL string, terms []string, opts ExpandOptions) ([]ExpandedPage, error) {
	u, err := url.Parse(seedURL)
	if err != nil || u.Hostname() == "" {
		return nil, &ExpandError{Domain: seedURL, Message: "invalid seed URL", Cause: err}
	}

	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultExpandOptions().MaxPages
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultExpandOptions().MaxDepth
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultExpandOptions().Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultExpandOptions().UserAgent
	}

	host := u.Hostname()
	scope := normalizeTerms(append(append([]string{}, baseExpandTerms...), terms...))

	c := colly.NewCollector(
		colly.AllowedDomains(host, "www."+host),
		colly.MaxDepth(opts.MaxDepth),
		colly.UserAgent(opts.UserAgent),
	)
	c.SetRequestTimeout(opts.Timeout)

	var mu sync.Mutex
	var pages []ExpandedPage

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		mu.Lock()
		full := len(pages) >= opts.MaxPages
		mu.Unlock()
		if full {
			r.Abort()
		}
	})

	c.OnResponse(func(r *colly.Response) {
		if !strings.Contains(r.Headers.Get("Content-Type"), "html") {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if len(pages) >= opts.MaxPages {
			return
		}
		pages = append(pages, ExpandedPage{
			URL:  r.Request.URL.String(),
			HTML: string(r.Body),
		})
	})

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" || !matchesScope(link, scope) {
			return
		}
		_ = e.Request.Visit(link)
	})

	if err := c.Visit(seedURL); err != nil {
		return nil, &ExpandError{Domain: host, Message: "seed visit failed", Cause: err}
	}
	c.Wait()

	// Drop the seed itself, the caller already has it.
	out := pages[:0]
	for _, p := range pages {
		if strings.TrimSuffix(p.URL, "/") == strings.TrimSuffix(seedURL, "/") {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func normalizeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func matchesScope(link string, scope []string) bool {
	lowered := strings.ToLower(link)
	for _, term := range scope {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
