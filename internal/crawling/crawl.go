package crawling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/fetch"
	"github.com/jonathan/portfolio-scout/internal/types"
)

const defaultBrowserTimeout = 30 * time.Second

// Config holds the knobs for a portfolio crawler.
type Config struct {
	// Fetcher provides database-backed page caching. When nil, pages are
	// fetched directly without caching.
	Fetcher *fetch.CachedFetcher

	// EnableBrowser allows falling back to headless Chrome when the plain
	// HTTP response carries too little text to be a rendered portfolio.
	EnableBrowser  bool
	BrowserTimeout time.Duration

	// EnableExpansion follows keyword-scoped same-domain links from the
	// seed page (pagination, sector facets).
	EnableExpansion bool
	Expand          ExpandOptions
}

// Crawler turns one portfolio seed URL into an extraction bundle.
type Crawler struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a crawler. A nil logger is replaced with a no-op logger.
func New(cfg Config, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BrowserTimeout <= 0 {
		cfg.BrowserTimeout = defaultBrowserTimeout
	}
	return &Crawler{cfg: cfg, logger: logger}
}

// Crawl renders the portfolio page at pageURL and flattens it into a bundle.
// scopeTerms are keywords already learned for this domain; together with the
// keywords discovered on the page they scope same-domain expansion.
func (c *Crawler) Crawl(ctx context.Context, pageURL string, scopeTerms []string) (*types.PageBundle, error) {
	html, fetchErr := c.fetchHTML(ctx, pageURL)

	platform := fetch.DetectPlatform(html)
	text := ""
	if html != "" {
		text, _ = fetch.ExtractMainText(html, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
	}

	// A thin or failed HTTP response usually means a JavaScript-rendered
	// site; render it in a headless browser when allowed.
	if (fetchErr != nil || fetch.ShouldUseBrowser(text)) && c.cfg.EnableBrowser {
		rendered, err := fetch.WithBrowser(ctx, pageURL, c.cfg.BrowserTimeout, false)
		switch {
		case err == nil:
			html = rendered
			fetchErr = nil
			platform = fetch.DetectPlatform(html)
			text, _ = fetch.ExtractMainText(html, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
		case fetchErr != nil:
			return nil, &CrawlError{URL: pageURL, Message: "fetch and browser render both failed", Cause: fetchErr}
		default:
			c.logger.Debug("browser render failed, keeping HTTP response",
				zap.String("url", pageURL),
				zap.Error(err))
		}
	}
	if fetchErr != nil {
		return nil, &CrawlError{URL: pageURL, Message: "fetch failed", Cause: fetchErr}
	}

	bundle, err := ExtractBundle(pageURL, html)
	if err != nil {
		return nil, err
	}
	bundle.Text = text

	if fetch.HasDataLayer(platform) {
		bundle.EmbeddedJSON = append(bundle.EmbeddedJSON, ProbeDataEndpoints(ctx, pageURL)...)
	}

	if c.cfg.EnableExpansion {
		c.expand(ctx, pageURL, scopeTerms, bundle)
	}

	c.logger.Info("crawled portfolio page",
		zap.String("url", pageURL),
		zap.String("platform", string(platform)),
		zap.Int("anchors", len(bundle.Anchors)),
		zap.Int("blocks", len(bundle.Blocks)),
		zap.Int("embedded_json", len(bundle.EmbeddedJSON)),
		zap.Strings("keywords", bundle.DiscoveredKeywords))

	return bundle, nil
}

func (c *Crawler) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	if c.cfg.Fetcher != nil {
		res, err := c.cfg.Fetcher.FetchWithType(ctx, pageURL, "portfolio")
		if err != nil {
			return "", err
		}
		return res.HTML, nil
	}

	res, err := fetch.URL(ctx, pageURL, nil)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// expand merges keyword-scoped same-domain pages into the seed bundle.
// Expansion failures are logged and swallowed: the seed page alone is still
// a usable bundle.
func (c *Crawler) expand(ctx context.Context, pageURL string, scopeTerms []string, bundle *types.PageBundle) {
	terms := append(append([]string{}, scopeTerms...), bundle.DiscoveredKeywords...)

	pages, err := ExpandPortfolio(ctx, pageURL, terms, c.cfg.Expand)
	if err != nil {
		c.logger.Debug("portfolio expansion failed",
			zap.String("url", pageURL),
			zap.Error(err))
		return
	}

	for _, page := range pages {
		extra, err := ExtractBundle(page.URL, page.HTML)
		if err != nil {
			continue
		}
		MergeBundle(bundle, extra)
	}

	if len(pages) > 0 {
		c.logger.Debug("expanded portfolio seed",
			zap.String("url", pageURL),
			zap.Int("pages", len(pages)))
	}
}
