// Package pipeline orchestrates the portfolio enrichment run: each seed URL
// is crawled, company seeds are extracted, each company is enriched with a
// website and deal articles, and the resulting records are appended to the
// sinks. Failures are isolated at two levels: a failed seed never aborts the
// run, and a failed company never aborts its seed.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/db"
	"github.com/jonathan/portfolio-scout/internal/investor"
	"github.com/jonathan/portfolio-scout/internal/sink"
	"github.com/jonathan/portfolio-scout/internal/types"
)

// Crawler renders one portfolio page into an extraction bundle.
type Crawler interface {
	Crawl(ctx context.Context, pageURL string, scopeTerms []string) (*types.PageBundle, error)
}

// SeedExtractor turns a page bundle into candidate company seeds.
type SeedExtractor interface {
	ExtractCompanySeeds(ctx context.Context, bundle *types.PageBundle, investorName string) ([]types.CompanySeed, error)
}

// WebsiteResolver resolves a company's official website, or "" when unknown.
type WebsiteResolver interface {
	Resolve(ctx context.Context, companyName, inlineHint, portfolioURL string) string
}

// ArticleFinder returns up to the configured number of deal article URLs.
type ArticleFinder interface {
	Select(ctx context.Context, companyName, investorName, companyWebsite string) ([]string, error)
}

// SeedValidator rejects unsafe seed URLs before any fetch.
type SeedValidator interface {
	Validate(ctx context.Context, rawURL string) error
}

// RecordSink appends one output row.
type RecordSink interface {
	Append(ctx context.Context, row []string) error
}

// KeywordStore accumulates discovered crawl keywords across seeds.
type KeywordStore interface {
	Merge(words []string) error
	Snapshot() []string
}

// CompletionLedger reports which seeds were finished in earlier runs.
type CompletionLedger interface {
	Completed(sourceURL string) bool
}

// ProgressEvent represents a progress update during pipeline execution.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Seed    string `json:"seed"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs.
type ProgressCallback func(event ProgressEvent)

// Progress stages.
const (
	StageSeedSkipped  = "seed_skipped"
	StageSeedRejected = "seed_rejected"
	StageCrawled      = "crawled"
	StageExtracted    = "extracted"
	StageCompanyDone  = "company_done"
	StageSeedDone     = "seed_done"
	StageSeedFailed   = "seed_failed"
)

// Deps holds the orchestrator's collaborators. Database is optional; every
// other collaborator is required.
type Deps struct {
	Crawler   Crawler
	Extractor SeedExtractor
	Resolver  WebsiteResolver
	Articles  ArticleFinder
	Validator SeedValidator
	Records   RecordSink
	Keywords  KeywordStore
	Ledger    CompletionLedger
	Database  *db.DB
}

// Options holds run-level configuration.
type Options struct {
	// InvestorName overrides the name derived from each seed URL. Leave
	// empty to derive per seed.
	InvestorName string
	// InputPath is recorded on the database run row.
	InputPath  string
	OnProgress ProgressCallback
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	SeedsTotal     int
	SeedsSkipped   int // already completed per the resume ledger
	SeedsRejected  int // failed safety validation
	SeedsFailed    int
	SeedsProcessed int

	CompaniesTotal   int
	CompaniesFailed  int
	WebsitesResolved int
	ArticlesFound    int
}

// Orchestrator runs the enrichment pipeline over a list of seed URLs.
type Orchestrator struct {
	deps   Deps
	opts   Options
	logger *zap.Logger
}

// New creates an Orchestrator. A nil logger is replaced with a no-op logger.
func New(deps Deps, opts Options, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{deps: deps, opts: opts, logger: logger}
}

// Run processes every seed URL. It returns an error only when the context is
// cancelled; individual seed failures are counted in the stats and logged.
func (o *Orchestrator) Run(ctx context.Context, seedURLs []string) (*RunStats, error) {
	stats := &RunStats{SeedsTotal: len(seedURLs)}

	var runID uuid.UUID
	if o.deps.Database != nil {
		id, err := o.deps.Database.CreateRun(ctx, o.opts.InputPath)
		if err != nil {
			o.logger.Warn("failed to create run record, continuing without run tracking", zap.Error(err))
		} else {
			runID = id
		}
	}

	for _, seedURL := range seedURLs {
		if err := ctx.Err(); err != nil {
			o.completeRun(ctx, runID, db.RunStatusFailed, stats)
			return stats, err
		}
		o.processSeed(ctx, runID, seedURL, stats)
	}

	o.completeRun(ctx, runID, db.RunStatusCompleted, stats)
	return stats, nil
}

func (o *Orchestrator) completeRun(ctx context.Context, runID uuid.UUID, status string, stats *RunStats) {
	if o.deps.Database == nil || runID == uuid.Nil {
		return
	}
	if err := o.deps.Database.CompleteRun(ctx, runID, status, stats.SeedsProcessed, stats.CompaniesTotal); err != nil {
		o.logger.Warn("failed to complete run record", zap.Error(err))
	}
}

func (o *Orchestrator) processSeed(ctx context.Context, runID uuid.UUID, seedURL string, stats *RunStats) {
	logger := o.logger.With(zap.String("seed", seedURL))

	if o.deps.Ledger != nil && o.deps.Ledger.Completed(seedURL) {
		stats.SeedsSkipped++
		logger.Info("seed already completed, skipping")
		o.emit(ProgressEvent{Stage: StageSeedSkipped, Seed: seedURL, Message: "already completed"})
		return
	}

	if o.deps.Validator != nil {
		if err := o.deps.Validator.Validate(ctx, seedURL); err != nil {
			stats.SeedsRejected++
			logger.Warn("seed rejected by safety validation", zap.Error(err))
			o.emit(ProgressEvent{Stage: StageSeedRejected, Seed: seedURL, Message: err.Error()})
			return
		}
	}

	investorName := o.opts.InvestorName
	if investorName == "" {
		investorName = investor.NameFromURL(seedURL)
	}
	investorWebsite := investor.WebsiteFromURL(seedURL)

	var scope []string
	if o.deps.Keywords != nil {
		scope = o.deps.Keywords.Snapshot()
	}

	bundle, err := o.deps.Crawler.Crawl(ctx, seedURL, scope)
	if err != nil {
		stats.SeedsFailed++
		logger.Error("seed crawl failed", zap.Error(err))
		o.emit(ProgressEvent{Stage: StageSeedFailed, Seed: seedURL, Message: err.Error()})
		return
	}
	o.emit(ProgressEvent{Stage: StageCrawled, Seed: seedURL, Message: "page crawled"})

	if o.deps.Keywords != nil && len(bundle.DiscoveredKeywords) > 0 {
		if err := o.deps.Keywords.Merge(bundle.DiscoveredKeywords); err != nil {
			logger.Warn("failed to persist discovered keywords", zap.Error(err))
		}
	}

	seeds, err := o.deps.Extractor.ExtractCompanySeeds(ctx, bundle, investorName)
	if err != nil {
		stats.SeedsFailed++
		logger.Error("company extraction failed", zap.Error(err))
		o.emit(ProgressEvent{Stage: StageSeedFailed, Seed: seedURL, Message: err.Error()})
		return
	}
	logger.Info("extracted company seeds", zap.Int("companies", len(seeds)))
	o.emit(ProgressEvent{Stage: StageExtracted, Seed: seedURL, Message: "companies extracted"})

	// Zero extracted companies is a legitimate outcome, not a failure: the
	// page may genuinely list nothing.
	for _, companySeed := range seeds {
		if err := ctx.Err(); err != nil {
			return
		}
		if err := o.processCompany(ctx, runID, seedURL, investorName, investorWebsite, companySeed, stats); err != nil {
			stats.CompaniesFailed++
			logger.Warn("company enrichment failed",
				zap.String("company", companySeed.CompanyName),
				zap.Error(err))
		}
	}

	stats.SeedsProcessed++
	o.emit(ProgressEvent{Stage: StageSeedDone, Seed: seedURL, Message: "seed completed"})
}

func (o *Orchestrator) processCompany(ctx context.Context, runID uuid.UUID, seedURL, investorName, investorWebsite string, companySeed types.CompanySeed, stats *RunStats) error {
	website := ""
	if o.deps.Resolver != nil {
		website = o.deps.Resolver.Resolve(ctx, companySeed.CompanyName, companySeed.Website, seedURL)
	}

	var articles []string
	if o.deps.Articles != nil {
		found, err := o.deps.Articles.Select(ctx, companySeed.CompanyName, investorName, website)
		if err != nil {
			// Article search failures degrade to an empty article list;
			// the record is still worth writing.
			o.logger.Warn("article selection failed",
				zap.String("company", companySeed.CompanyName),
				zap.Error(err))
		} else {
			articles = found
		}
	}

	record := types.PortfolioRecord{
		SourceURL:       seedURL,
		InvestorName:    investorName,
		InvestorWebsite: investorWebsite,
		CompanyName:     companySeed.CompanyName,
		CompanyWebsite:  website,
	}
	copy(record.Articles[:], articles)

	if err := o.deps.Records.Append(ctx, recordRow(record)); err != nil {
		return err
	}

	if o.deps.Database != nil {
		if err := o.deps.Database.InsertCompanyRecord(ctx, runID, record); err != nil {
			// The CSV mirror is the source of truth; a database miss is
			// logged but does not fail the company.
			o.logger.Warn("database insert failed",
				zap.String("company", record.CompanyName),
				zap.Error(err))
		}
	}

	stats.CompaniesTotal++
	if website != "" {
		stats.WebsitesResolved++
	}
	for _, a := range record.Articles {
		if a != "" {
			stats.ArticlesFound++
		}
	}

	o.emit(ProgressEvent{
		Stage:   StageCompanyDone,
		Seed:    seedURL,
		Company: record.CompanyName,
		Message: "record written",
	})
	return nil
}

func (o *Orchestrator) emit(event ProgressEvent) {
	if o.opts.OnProgress != nil {
		o.opts.OnProgress(event)
	}
}

// recordRow flattens a record into the sink's column order.
func recordRow(r types.PortfolioRecord) []string {
	row := make([]string, 0, len(sink.Columns))
	row = append(row,
		r.SourceURL,
		r.InvestorName,
		r.InvestorWebsite,
		r.CompanyName,
		r.CompanyWebsite,
	)
	row = append(row, r.Articles[:]...)
	return row
}
