// Package crawling renders investor portfolio pages and flattens them into
// extraction bundles: visible text, anchors, content blocks, table chunks and
// embedded JSON, plus any keyword-scoped same-domain expansion pages.
package crawling

import "fmt"

// CrawlError represents a failure to render or parse a portfolio page.
type CrawlError struct {
	URL     string
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("crawl error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("crawl error for %s: %s", e.URL, e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// ExpandError represents a failure during same-domain portfolio expansion.
type ExpandError struct {
	Domain  string
	Message string
	Cause   error
}

func (e *ExpandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("expand error for %s: %s: %v", e.Domain, e.Message, e.Cause)
	}
	return fmt.Sprintf("expand error for %s: %s", e.Domain, e.Message)
}

func (e *ExpandError) Unwrap() error {
	return e.Cause
}
