package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/portfolio-scout/internal/types"
)

func TestPrintCompanyRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.PortfolioRecord{
		SourceURL:      "https://examplefund.com/portfolio",
		InvestorName:   "Example Fund",
		CompanyName:    "Acme",
		CompanyWebsite: "https://acme.com",
		Articles:       [types.MaxArticles]string{"https://reuters.com/article/acme-deal"},
	}

	p.PrintCompanyRecord(record)
	output := buf.String()

	assert.Contains(t, output, "COMPANY RECORD")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "https://acme.com")
	assert.Contains(t, output, "Example Fund")
	assert.Contains(t, output, "reuters.com")
}

func TestPrintCompanyRecord_UnresolvedWebsite(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanyRecord(&types.PortfolioRecord{CompanyName: "Globex"})

	assert.Contains(t, buf.String(), "(unresolved)")
}

func TestPrintCompanyRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanyRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintCompanySeeds(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	seeds := []types.CompanySeed{
		{CompanyName: "Acme", Website: "https://acme.com"},
		{CompanyName: "Globex"},
		{CompanyName: "Initech"},
		{CompanyName: "Hooli"},
		{CompanyName: "Umbrella"},
		{CompanyName: "Stark Industries"},
	}

	p.PrintCompanySeeds("https://examplefund.com/portfolio", seeds)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED COMPANIES")
	assert.Contains(t, output, "Found 6 companies")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "and 1 more companies")
	// The sixth company is past the display cap.
	assert.NotContains(t, output, "Stark Industries")
}

func TestPrintCompanySeeds_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanySeeds("https://examplefund.com/portfolio", nil)

	assert.Contains(t, buf.String(), "No companies found")
}

func TestPrintScoredCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidates := []types.ScoredCandidate{
		{URL: "https://reuters.com/article/acme-merger", Score: 115},
		{URL: "https://linkedin.com/company/acme", Score: 10},
	}

	p.PrintScoredCandidates("Acme", candidates)
	output := buf.String()

	assert.Contains(t, output, "SCORED ARTICLE CANDIDATES")
	assert.Contains(t, output, "115")
	assert.Contains(t, output, "reuters.com")
}

func TestPrintScoredCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoredCandidates("Acme", nil)

	assert.Empty(t, buf.String())
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(RunSummary{
		SeedsTotal:       3,
		SeedsProcessed:   2,
		SeedsFailed:      1,
		CompaniesTotal:   12,
		WebsitesResolved: 10,
		ArticlesFound:    21,
	})
	output := buf.String()

	assert.Contains(t, output, "RUN SUMMARY")
	assert.Contains(t, output, "3 total, 2 processed")
	assert.Contains(t, output, "1 failed")
	assert.Contains(t, output, "12 recorded")
	assert.Contains(t, output, "21 found")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))
	output := buf.String()

	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
