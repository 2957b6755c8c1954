package crawling

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	dataProbeTimeout = 5 * time.Second

	// maxDataPayload bounds how much of a data endpoint we read. Gatsby
	// page-data files are small; anything bigger is not a portfolio listing.
	maxDataPayload = 4 << 20
)

// ProbeDataEndpoints fetches the well-known SPA data endpoints for a page and
// returns whatever decodes as JSON. For a Gatsby site, the page's content
// lives at /page-data/{path}/page-data.json rather than in the HTML.
// Endpoints that are missing or not JSON are skipped silently.
func ProbeDataEndpoints(ctx context.Context, pageURL string) []any {
	endpoints := dataEndpoints(pageURL)
	if len(endpoints) == 0 {
		return nil
	}

	client := &http.Client{Timeout: dataProbeTimeout}

	var mu sync.Mutex
	var decoded []any

	g, gctx := errgroup.WithContext(ctx)
	for _, endpoint := range endpoints {
		g.Go(func() error {
			v, ok := fetchJSON(gctx, client, endpoint)
			if !ok {
				return nil
			}
			mu.Lock()
			decoded = append(decoded, v)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return decoded
}

// dataEndpoints derives the candidate data URLs for a page. The page's own
// path is probed first; the index endpoint is included as well because some
// sites render the portfolio on the home page.
func dataEndpoints(pageURL string) []string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil
	}

	base := fmt.Sprintf("%s://%s", u.Scheme, u.Host)
	path := strings.Trim(u.Path, "/")

	var endpoints []string
	if path != "" {
		endpoints = append(endpoints, fmt.Sprintf("%s/page-data/%s/page-data.json", base, path))
	}
	endpoints = append(endpoints, fmt.Sprintf("%s/page-data/index/page-data.json", base))
	return endpoints
}

func fetchJSON(ctx context.Context, client *http.Client, endpoint string) (any, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; PortfolioScout/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "json") {
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDataPayload))
	if err != nil {
		return nil, false
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, false
	}
	return v, true
}
