// Package llm - extractor.go turns a crawled portfolio page bundle into
// company seeds via structured LLM extraction.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/prompts"
	"github.com/jonathan/portfolio-scout/internal/schemas"
	"github.com/jonathan/portfolio-scout/internal/types"
)

// Payload caps keep the prompt inside the model's context window. Portfolio
// pages with thousands of anchors get truncated, not rejected.
const (
	maxAnchorHints  = 300
	maxBlocks       = 250
	maxTableChunks  = 80
	maxJSONRecords  = 200
	maxRecordDepth  = 8
	seedsSchemaPath = "schemas/company_seeds.schema.json"
)

// nameFields mark a JSON object list as company-like records worth feeding
// to the model. skipFields are CMS bookkeeping keys that carry no signal.
var (
	nameFields = map[string]bool{
		"name": true, "companyName": true, "company_name": true,
		"title": true, "companyname": true,
	}
	skipFields = map[string]bool{
		"_createdAt": true, "_updatedAt": true, "_rev": true,
		"_id": true, "_key": true, "_system": true, "_type": true,
	}
)

// Extractor extracts portfolio company seeds from page bundles.
type Extractor struct {
	client Client
	tier   ModelTier
	logger *zap.Logger
}

// NewExtractor creates an Extractor using the given client and model tier.
func NewExtractor(client Client, tier ModelTier, logger *zap.Logger) *Extractor {
	return &Extractor{client: client, tier: tier, logger: logger}
}

// anchorHint is the compact anchor representation sent to the model: the
// visible text plus the last path segment of the href, which often carries
// the company slug when the text is just a logo.
type anchorHint struct {
	Text string `json:"text"`
	Hint string `json:"hint"`
}

type extractionPayload struct {
	AnchorHints    []anchorHint `json:"anchor_hints"`
	Blocks         []string     `json:"blocks"`
	DOMChunks      []string     `json:"dom_chunks"`
	StructuredData []string     `json:"structured_data,omitempty"`
}

// ExtractCompanySeeds asks the model for every portfolio company visible in
// the bundle and returns normalized, name-deduplicated seeds. The returned
// seeds carry the bundle's source URL and the given investor name.
func (e *Extractor) ExtractCompanySeeds(ctx context.Context, bundle *types.PageBundle, investorName string) ([]types.CompanySeed, error) {
	payload := buildPayload(bundle)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction payload: %w", err)
	}

	prompt := prompts.MustGet("extraction.json", "extract-company-seeds")
	raw, err := e.client.GenerateJSON(ctx, prompt+"\n\nPage data:\n"+string(payloadJSON), e.tier)
	if err != nil {
		return nil, fmt.Errorf("company seed extraction failed: %w", err)
	}

	cleaned := CleanJSONBlock(raw)
	if err := e.validateSeedsJSON(cleaned); err != nil {
		return nil, err
	}

	var items []struct {
		CompanyName    string `json:"company_name"`
		CompanyWebsite string `json:"company_website"`
	}
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	seeds := make([]types.CompanySeed, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		name := strings.TrimSpace(item.CompanyName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		seeds = append(seeds, types.CompanySeed{
			SourceURL:    bundle.SourceURL,
			InvestorName: investorName,
			CompanyName:  name,
			Website:      types.NormalizeWebsite(item.CompanyWebsite),
		})
	}

	e.logger.Info("extracted company seeds",
		zap.String("source_url", bundle.SourceURL),
		zap.Int("seeds", len(seeds)))
	return seeds, nil
}

// validateSeedsJSON checks the model output against the seeds schema when
// the schema file is reachable. A missing schema file is not an error; a
// schema violation is.
func (e *Extractor) validateSeedsJSON(content string) error {
	path := schemas.ResolveSchemaPath(seedsSchemaPath)
	if path == "" {
		e.logger.Debug("seeds schema not found, skipping validation",
			zap.String("schema", seedsSchemaPath))
		return nil
	}
	schemaContent, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seeds schema: %w", err)
	}
	if err := schemas.ValidateJSONString(string(schemaContent), content); err != nil {
		return fmt.Errorf("extraction response failed schema validation: %w", err)
	}
	return nil
}

func buildPayload(bundle *types.PageBundle) extractionPayload {
	hints := make([]anchorHint, 0, len(bundle.Anchors))
	for _, a := range bundle.Anchors {
		text := strings.TrimSpace(a.Text)
		href := strings.TrimSpace(a.Href)
		if text == "" && href == "" {
			continue
		}
		hints = append(hints, anchorHint{Text: text, Hint: lastPathSegment(href)})
	}

	var records []string
	for _, obj := range bundle.EmbeddedJSON {
		records = append(records, mineRecords(obj, 0)...)
	}

	return extractionPayload{
		AnchorHints:    capSlice(hints, maxAnchorHints),
		Blocks:         capSlice(bundle.Blocks, maxBlocks),
		DOMChunks:      capSlice(bundle.TableChunks, maxTableChunks),
		StructuredData: capSlice(records, maxJSONRecords),
	}
}

// mineRecords walks nested JSON looking for lists of company-like objects
// (objects carrying a name field) and flattens each into a "key: value |
// key: value" text record.
func mineRecords(data any, depth int) []string {
	if depth > maxRecordDepth {
		return nil
	}

	var records []string
	switch v := data.(type) {
	case map[string]any:
		for _, child := range v {
			records = append(records, mineRecords(child, depth+1)...)
		}
	case []any:
		if len(v) == 0 {
			return nil
		}
		first, ok := v[0].(map[string]any)
		if ok && hasNameField(first) {
			for _, item := range v {
				obj, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if record := flattenRecord(obj); record != "" {
					records = append(records, record)
				}
			}
			return records
		}
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, mineRecords(obj, depth+1)...)
			}
		}
	}
	return records
}

func hasNameField(obj map[string]any) bool {
	for key := range obj {
		if nameFields[key] {
			return true
		}
	}
	return false
}

func flattenRecord(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		if !skipFields[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, key+": "+s)
		}
	}
	return strings.Join(parts, " | ")
}

func lastPathSegment(href string) string {
	if !strings.Contains(href, "/") {
		return ""
	}
	trimmed := strings.Trim(href, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

func capSlice[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
