package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-scout/internal/articles"
	"github.com/jonathan/portfolio-scout/internal/config"
	"github.com/jonathan/portfolio-scout/internal/crawling"
	"github.com/jonathan/portfolio-scout/internal/db"
	"github.com/jonathan/portfolio-scout/internal/fetch"
	"github.com/jonathan/portfolio-scout/internal/keywords"
	"github.com/jonathan/portfolio-scout/internal/ledger"
	"github.com/jonathan/portfolio-scout/internal/llm"
	"github.com/jonathan/portfolio-scout/internal/observability"
	"github.com/jonathan/portfolio-scout/internal/pipeline"
	"github.com/jonathan/portfolio-scout/internal/providers"
	"github.com/jonathan/portfolio-scout/internal/safety"
	"github.com/jonathan/portfolio-scout/internal/scoring"
	"github.com/jonathan/portfolio-scout/internal/sink"
	"github.com/jonathan/portfolio-scout/internal/website"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full portfolio enrichment pipeline end-to-end",
	Long: `Reads seed portfolio URLs from the input CSV, crawls each page, extracts the
listed companies, resolves official websites, finds deal articles, and appends
one record per company to the output CSV (and the database when configured).

Re-runs are idempotent: seeds already present in the output are skipped.
Configuration can be loaded from a JSON file using --config; command-line
arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runInput        string
	runOutput       string
	runKeywordDB    string
	runInvestor     string
	runAPIKey       string
	runDatabaseURL  string
	runUseBrowser   bool
	runExpand       bool
	runSkipCache    bool
	runVerbose      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runInput, "input", "i", "", "Path to CSV of seed portfolio URLs (first column)")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Path to the output CSV of company records")
	runCommand.Flags().StringVar(&runKeywordDB, "keyword-db", "", "Path to the keyword discovery store")
	runCommand.Flags().StringVar(&runInvestor, "investor", "", "Investor name (overrides the name derived from each seed URL)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	runCommand.Flags().BoolVar(&runExpand, "expand", false, "Follow keyword-scoped same-domain links from each seed page")
	runCommand.Flags().BoolVar(&runSkipCache, "skip-cache", false, "Bypass the crawled-page cache")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for the page cache and the Postgres record sink
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("input") {
		cfg.Input = runInput
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputCSV = runOutput
	}
	if cmd.Flags().Changed("keyword-db") {
		cfg.KeywordDB = runKeywordDB
	}
	if cmd.Flags().Changed("investor") {
		cfg.InvestorName = runInvestor
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("expand") {
		cfg.EnableExpansion = runExpand
	}
	if cmd.Flags().Changed("skip-cache") {
		cfg.SkipCache = runSkipCache
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults and environment for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		OutputCSV:      "out/companies.csv",
		KeywordDB:      "out/keywords.db",
		MaxExpandPages: 8,
		MaxExpandDepth: 2,
	})
	cfg.FromEnv()

	// Step 4: Validate required fields
	if cfg.Input == "" {
		return fmt.Errorf("--input is required (via flag or config)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seeds, err := readSeedCSV(cfg.Input)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no valid portfolio URLs found in %s", cfg.Input)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deps, cleanup, err := buildDeps(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)
	opts := pipeline.Options{
		InvestorName: cfg.InvestorName,
		InputPath:    cfg.Input,
	}
	if cfg.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			if e.Company != "" {
				fmt.Printf("[%s] %s: %s (%s)\n", e.Stage, e.Seed, e.Message, e.Company)
				return
			}
			fmt.Printf("[%s] %s: %s\n", e.Stage, e.Seed, e.Message)
		}
	}

	fmt.Printf("Processing %d seed URLs from %s...\n", len(seeds), cfg.Input)

	stats, err := pipeline.New(deps, opts, logger).Run(ctx, seeds)
	if err != nil {
		return fmt.Errorf("pipeline aborted: %w", err)
	}

	printer.PrintRunSummary(observability.RunSummary{
		SeedsTotal:       stats.SeedsTotal,
		SeedsProcessed:   stats.SeedsProcessed,
		SeedsSkipped:     stats.SeedsSkipped,
		SeedsRejected:    stats.SeedsRejected,
		SeedsFailed:      stats.SeedsFailed,
		CompaniesTotal:   stats.CompaniesTotal,
		CompaniesFailed:  stats.CompaniesFailed,
		WebsitesResolved: stats.WebsitesResolved,
		ArticlesFound:    stats.ArticlesFound,
	})
	fmt.Printf("Done! Records written to %s\n", cfg.OutputCSV)

	// Individual seed failures are reported in the summary but do not fail
	// the process; re-running picks up where this run left off.
	return nil
}

// buildDeps wires the pipeline collaborators from configuration. The returned
// cleanup closes everything that was opened.
func buildDeps(ctx context.Context, cfg *config.Config, logger *zap.Logger) (pipeline.Deps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Database is optional: without it the page cache and the Postgres
	// record sink are disabled, the CSV remains authoritative.
	var database *db.DB
	if cfg.DatabaseURL != "" {
		d, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database connection failed, continuing without persistence", zap.Error(err))
		} else if err := d.EnsureSchema(ctx); err != nil {
			logger.Warn("database schema setup failed, continuing without persistence", zap.Error(err))
			d.Close()
		} else {
			database = d
			closers = append(closers, d.Close)
		}
	}

	records := sink.NewCSV(cfg.OutputCSV)

	sources := []ledger.Source{records}
	if database != nil {
		sources = append(sources, database)
	}
	led, err := ledger.Load(ctx, sources...)
	if err != nil {
		cleanup()
		return pipeline.Deps{}, nil, fmt.Errorf("failed to load resume ledger: %w", err)
	}

	var store pipeline.KeywordStore
	if cfg.KeywordDB != "" {
		kw, err := keywords.Open(cfg.KeywordDB)
		if err != nil {
			logger.Warn("keyword store unavailable, crawl scope will not persist", zap.Error(err))
		} else {
			store = kw
			closers = append(closers, func() { _ = kw.Close() })
		}
	}

	retry := providers.DefaultRetryPolicy()

	var entity providers.EntityLookup
	if cfg.KnowledgeAPIKey != "" {
		kg, err := providers.NewKnowledgeGraph(ctx, cfg.KnowledgeAPIKey, retry)
		if err != nil {
			logger.Warn("knowledge graph unavailable", zap.Error(err))
		} else {
			entity = kg
		}
	}

	var searcher providers.Searcher
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		gs, err := providers.NewGoogleSearch(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, retry)
		if err != nil {
			logger.Warn("website search unavailable", zap.Error(err))
		} else {
			searcher = gs
		}
	}

	var dealSearch providers.Searcher
	if cfg.DealAPIKey != "" && cfg.DealEngineID != "" {
		gs, err := providers.NewGoogleSearch(ctx, cfg.DealAPIKey, cfg.DealEngineID, retry)
		if err != nil {
			logger.Warn("deal article search unavailable", zap.Error(err))
		} else {
			dealSearch = gs
		}
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		cleanup()
		return pipeline.Deps{}, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closers = append(closers, func() { _ = client.Close() })

	fetchOpts := fetch.DefaultOptions()
	if cfg.RequestTimeout() > 0 {
		fetchOpts.Timeout = cfg.RequestTimeout()
	}
	fetcher := fetch.NewCachedFetcher(database, &fetch.CachedFetcherConfig{
		SkipCache: cfg.SkipCache,
		Options:   fetchOpts,
	})

	crawler := crawling.New(crawling.Config{
		Fetcher:         fetcher,
		EnableBrowser:   cfg.UseBrowser,
		EnableExpansion: cfg.EnableExpansion,
		Expand: crawling.ExpandOptions{
			MaxPages: cfg.MaxExpandPages,
			MaxDepth: cfg.MaxExpandDepth,
		},
	}, logger)

	deps := pipeline.Deps{
		Crawler:   crawler,
		Extractor: llm.NewExtractor(client, tierFromString(cfg.GeminiModelTier), logger),
		Resolver:  website.NewResolver(entity, searcher, logger),
		Articles:  articles.NewSelector(dealSearch, scoring.DefaultTable(), logger),
		Validator: safety.NewValidator(logger),
		Records:   records,
		Keywords:  store,
		Ledger:    led,
		Database:  database,
	}
	return deps, cleanup, nil
}
