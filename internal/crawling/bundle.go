package crawling

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/portfolio-scout/internal/types"
)

const (
	// minBlockLength and maxBlockLength bound the content blocks worth
	// sending to extraction. Shorter fragments are nav/button noise, longer
	// ones are whole-page wrappers that duplicate everything inside them.
	minBlockLength = 30
	maxBlockLength = 1500

	// minAnchorTextLength is the threshold below which we fall back to the
	// image alt attribute. Logo-grid portfolios often have no link text at all.
	minAnchorTextLength = 3
)

// ExtractBundle parses rendered HTML into the flattened shapes the extraction
// step consumes: anchors, content blocks, table chunks and embedded JSON.
// The bundle's Text field is left to the caller, which has already run
// platform-aware text extraction.
func ExtractBundle(sourceURL, html string) (*types.PageBundle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &CrawlError{URL: sourceURL, Message: "failed to parse HTML", Cause: err}
	}

	base, _ := url.Parse(sourceURL)

	bundle := &types.PageBundle{
		SourceURL: sourceURL,
	}
	bundle.Anchors = collectAnchors(doc, base)
	bundle.Blocks = collectBlocks(doc)
	bundle.TableChunks = collectTableChunks(doc)
	bundle.EmbeddedJSON = collectScriptJSON(doc)
	bundle.DiscoveredKeywords = DiscoverKeywords(bundle.Anchors)

	return bundle, nil
}

// MergeBundle folds an expansion page's bundle into the seed page's bundle,
// deduplicating anchors, blocks and table chunks across pages.
func MergeBundle(dst, src *types.PageBundle) {
	if dst == nil || src == nil {
		return
	}

	seenAnchors := make(map[string]bool, len(dst.Anchors))
	for _, a := range dst.Anchors {
		seenAnchors[a.Text+"\x00"+a.Href] = true
	}
	for _, a := range src.Anchors {
		key := a.Text + "\x00" + a.Href
		if !seenAnchors[key] {
			seenAnchors[key] = true
			dst.Anchors = append(dst.Anchors, a)
		}
	}

	dst.Blocks = appendUnique(dst.Blocks, src.Blocks)
	dst.TableChunks = appendUnique(dst.TableChunks, src.TableChunks)
	dst.EmbeddedJSON = append(dst.EmbeddedJSON, src.EmbeddedJSON...)

	seenKeywords := make(map[string]bool, len(dst.DiscoveredKeywords))
	for _, k := range dst.DiscoveredKeywords {
		seenKeywords[k] = true
	}
	for _, k := range src.DiscoveredKeywords {
		if !seenKeywords[k] {
			seenKeywords[k] = true
			dst.DiscoveredKeywords = append(dst.DiscoveredKeywords, k)
		}
	}
}

func collectAnchors(doc *goquery.Document, base *url.URL) []types.Anchor {
	var anchors []types.Anchor
	seen := make(map[string]bool)

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		href = resolveHref(base, href)

		text := squashWhitespace(s.Text())
		if len(text) < minAnchorTextLength {
			// Logo-only link: use the image alt text instead.
			if alt, ok := s.Find("img").Attr("alt"); ok {
				alt = squashWhitespace(alt)
				if alt != "" {
					text = alt
				}
			}
		}
		if text == "" {
			return
		}

		key := text + "\x00" + href
		if seen[key] {
			return
		}
		seen[key] = true
		anchors = append(anchors, types.Anchor{Text: text, Href: href})
	})

	return anchors
}

func collectBlocks(doc *goquery.Document) []string {
	var blocks []string
	seen := make(map[string]bool)

	doc.Find("article, li, section, div").Each(func(_ int, s *goquery.Selection) {
		text := squashWhitespace(s.Text())
		if len(text) <= minBlockLength || len(text) >= maxBlockLength {
			return
		}
		if seen[text] {
			return
		}
		seen[text] = true
		blocks = append(blocks, text)
	})

	return blocks
}

func collectTableChunks(doc *goquery.Document) []string {
	var chunks []string
	seen := make(map[string]bool)

	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		text := squashWhitespace(s.Text())
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		chunks = append(chunks, text)
	})

	return chunks
}

// collectScriptJSON decodes inline <script> bodies that parse as JSON. SPA
// frameworks embed their page state this way (__NEXT_DATA__, Gatsby page
// context), and those blobs often carry the full portfolio listing.
func collectScriptJSON(doc *goquery.Document) []any {
	var decoded []any

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.Text())
		if content == "" || !strings.Contains(content, "{") {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(content), &v); err != nil {
			return
		}
		decoded = append(decoded, v)
	})

	return decoded
}

func resolveHref(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}

func squashWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			seen[s] = true
			dst = append(dst, s)
		}
	}
	return dst
}
