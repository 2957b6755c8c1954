// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCompanyRecord outputs one enriched company record.
func (p *Printer) PrintCompanyRecord(record *types.PortfolioRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", record.CompanyName))
	if record.CompanyWebsite != "" {
		sb.WriteString(fmt.Sprintf("Website:  %s\n", record.CompanyWebsite))
	} else {
		sb.WriteString("Website:  (unresolved)\n")
	}
	sb.WriteString(fmt.Sprintf("Investor: %s\n", record.InvestorName))

	hasArticles := false
	for _, a := range record.Articles {
		if a != "" {
			hasArticles = true
			break
		}
	}
	if hasArticles {
		sb.WriteString("\nDeal articles:\n")
		for _, a := range record.Articles {
			if a == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", a))
		}
	}

	p.printBox("COMPANY RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompanySeeds outputs the companies extracted from one portfolio page.
func (p *Printer) PrintCompanySeeds(sourceURL string, seeds []types.CompanySeed) {
	if len(seeds) == 0 {
		p.printBox("EXTRACTED COMPANIES", fmt.Sprintf("Source: %s\n\nNo companies found on this page.", sourceURL))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n", sourceURL))
	sb.WriteString(fmt.Sprintf("Found %d companies:\n\n", len(seeds)))

	count := min(len(seeds), maxItemsToShow)
	for i := 0; i < count; i++ {
		seed := seeds[i]
		sb.WriteString(fmt.Sprintf("• %s", seed.CompanyName))
		if seed.Website != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", seed.Website))
		}
		sb.WriteString("\n")
	}
	if len(seeds) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more companies", len(seeds)-maxItemsToShow))
	}

	p.printBox("EXTRACTED COMPANIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoredCandidates outputs article candidates with their relevance scores.
func (p *Printer) PrintScoredCandidates(company string, candidates []types.ScoredCandidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s\n\n", company))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		u := c.URL
		if len(u) > 44 {
			u = u[:41] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  [%3d] %s\n", i+1, c.Score, u))
	}
	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("SCORED ARTICLE CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// RunSummary is the shape PrintRunSummary renders. It mirrors the pipeline's
// run statistics without importing it.
type RunSummary struct {
	SeedsTotal     int
	SeedsProcessed int
	SeedsSkipped   int
	SeedsRejected  int
	SeedsFailed    int

	CompaniesTotal   int
	CompaniesFailed  int
	WebsitesResolved int
	ArticlesFound    int
}

// PrintRunSummary outputs the end-of-run totals.
func (p *Printer) PrintRunSummary(s RunSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seeds:     %d total, %d processed\n", s.SeedsTotal, s.SeedsProcessed))
	if s.SeedsSkipped > 0 {
		sb.WriteString(fmt.Sprintf("           %d skipped (already done)\n", s.SeedsSkipped))
	}
	if s.SeedsRejected > 0 {
		sb.WriteString(fmt.Sprintf("           %d rejected (unsafe)\n", s.SeedsRejected))
	}
	if s.SeedsFailed > 0 {
		sb.WriteString(fmt.Sprintf("           %d failed\n", s.SeedsFailed))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Companies: %d recorded", s.CompaniesTotal))
	if s.CompaniesFailed > 0 {
		sb.WriteString(fmt.Sprintf(", %d failed", s.CompaniesFailed))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Websites:  %d resolved\n", s.WebsitesResolved))
	sb.WriteString(fmt.Sprintf("Articles:  %d found", s.ArticlesFound))

	p.printBox("RUN SUMMARY", sb.String())
}
