package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/types"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GetModel(ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error              { return nil }

func testBundle() *types.PageBundle {
	return &types.PageBundle{
		SourceURL: "https://examplefund.com/portfolio",
		Anchors: []types.Anchor{
			{Text: "Acme", Href: "https://examplefund.com/portfolio/acme"},
			{Text: "Globex", Href: "/portfolio/globex"},
		},
		Blocks: []string{"Acme builds industrial robots."},
	}
}

func TestExtractCompanySeeds_ParsesAndNormalizes(t *testing.T) {
	client := &fakeClient{response: `[
		{"company_name": "Acme", "company_website": "acme.com"},
		{"company_name": "Globex", "company_website": "http://globex.com"}
	]`}
	e := NewExtractor(client, TierLite, zap.NewNop())

	seeds, err := e.ExtractCompanySeeds(context.Background(), testBundle(), "Example Fund")

	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, types.CompanySeed{
		SourceURL:    "https://examplefund.com/portfolio",
		InvestorName: "Example Fund",
		CompanyName:  "Acme",
		Website:      "https://acme.com",
	}, seeds[0])
	assert.Equal(t, "https://globex.com", seeds[1].Website)
}

func TestExtractCompanySeeds_DeduplicatesCaseInsensitive(t *testing.T) {
	client := &fakeClient{response: `[
		{"company_name": "Acme", "company_website": ""},
		{"company_name": "ACME", "company_website": "https://acme.com"}
	]`}
	e := NewExtractor(client, TierLite, zap.NewNop())

	seeds, err := e.ExtractCompanySeeds(context.Background(), testBundle(), "Example Fund")

	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "Acme", seeds[0].CompanyName)
}

func TestExtractCompanySeeds_StripsMarkdownFence(t *testing.T) {
	client := &fakeClient{response: "```json\n[{\"company_name\": \"Acme\", \"company_website\": \"\"}]\n```"}
	e := NewExtractor(client, TierLite, zap.NewNop())

	seeds, err := e.ExtractCompanySeeds(context.Background(), testBundle(), "Example Fund")

	require.NoError(t, err)
	require.Len(t, seeds, 1)
}

func TestExtractCompanySeeds_SchemaViolation(t *testing.T) {
	client := &fakeClient{response: `[{"company_website": "https://acme.com"}]`}
	e := NewExtractor(client, TierLite, zap.NewNop())

	_, err := e.ExtractCompanySeeds(context.Background(), testBundle(), "Example Fund")

	require.Error(t, err)
	assert.ErrorContains(t, err, "schema validation")
}

func TestExtractCompanySeeds_GenerationError(t *testing.T) {
	client := &fakeClient{err: errors.New("model unavailable")}
	e := NewExtractor(client, TierLite, zap.NewNop())

	_, err := e.ExtractCompanySeeds(context.Background(), testBundle(), "Example Fund")

	require.Error(t, err)
	assert.ErrorContains(t, err, "extraction failed")
}

func TestExtractCompanySeeds_PromptCarriesAnchorHints(t *testing.T) {
	client := &fakeClient{response: `[]`}
	e := NewExtractor(client, TierLite, zap.NewNop())

	_, err := e.ExtractCompanySeeds(context.Background(), testBundle(), "Example Fund")

	require.NoError(t, err)
	assert.Contains(t, client.prompt, `"hint":"acme"`)
	assert.Contains(t, client.prompt, `"hint":"globex"`)
	assert.Contains(t, client.prompt, "Acme builds industrial robots.")
}

func TestBuildPayload_CapsAnchors(t *testing.T) {
	bundle := &types.PageBundle{SourceURL: "https://examplefund.com/portfolio"}
	for i := 0; i < maxAnchorHints+50; i++ {
		bundle.Anchors = append(bundle.Anchors, types.Anchor{
			Text: fmt.Sprintf("Company %d", i),
			Href: fmt.Sprintf("/portfolio/company-%d", i),
		})
	}

	payload := buildPayload(bundle)
	assert.Len(t, payload.AnchorHints, maxAnchorHints)
}

func TestBuildPayload_SkipsEmptyAnchors(t *testing.T) {
	bundle := &types.PageBundle{
		Anchors: []types.Anchor{
			{Text: "  ", Href: ""},
			{Text: "Acme", Href: "/portfolio/acme"},
		},
	}

	payload := buildPayload(bundle)
	require.Len(t, payload.AnchorHints, 1)
	assert.Equal(t, anchorHint{Text: "Acme", Hint: "acme"}, payload.AnchorHints[0])
}

func TestMineRecords_FindsNamedLists(t *testing.T) {
	data := map[string]any{
		"result": map[string]any{
			"companies": []any{
				map[string]any{
					"name":       "Acme",
					"website":    "https://acme.com",
					"_createdAt": "2024-01-01",
				},
				map[string]any{"name": "Globex"},
			},
		},
	}

	records := mineRecords(data, 0)

	require.Len(t, records, 2)
	assert.Equal(t, "name: Acme | website: https://acme.com", records[0])
	assert.Equal(t, "name: Globex", records[1])
}

func TestMineRecords_IgnoresUnnamedLists(t *testing.T) {
	data := []any{
		map[string]any{"color": "red"},
		map[string]any{"color": "blue"},
	}

	assert.Empty(t, mineRecords(data, 0))
}

func TestMineRecords_DepthLimit(t *testing.T) {
	leaf := map[string]any{"companies": []any{map[string]any{"name": "Acme"}}}
	var data any = leaf
	for i := 0; i < maxRecordDepth+2; i++ {
		data = map[string]any{"wrap": data}
	}

	assert.Empty(t, mineRecords(data, 0))
}

func TestLastPathSegment(t *testing.T) {
	assert.Equal(t, "acme", lastPathSegment("https://examplefund.com/portfolio/acme"))
	assert.Equal(t, "acme", lastPathSegment("/portfolio/acme/"))
	assert.Equal(t, "", lastPathSegment("acme"))
	assert.True(t, strings.HasPrefix(lastPathSegment("/a/b/c"), "c"))
}
