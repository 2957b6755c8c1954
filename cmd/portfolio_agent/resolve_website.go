package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-scout/internal/config"
	"github.com/jonathan/portfolio-scout/internal/providers"
	"github.com/jonathan/portfolio-scout/internal/website"
)

var resolveWebsiteCommand = &cobra.Command{
	Use:   "resolve-website <company name>",
	Short: "Resolve a company's official website",
	Long: `Runs the website resolution chain for a single company: inline hint, then
knowledge graph lookup, then web search. Prints the resolved website or
"unknown". Useful for debugging a single company without a full run.`,
	Args: cobra.ExactArgs(1),
	RunE: resolveWebsiteCmd,
}

var (
	resolveHint         string
	resolvePortfolioURL string
	resolveVerbose      bool
)

func init() {
	resolveWebsiteCommand.Flags().StringVar(&resolveHint, "hint", "", "Website hint taken from the portfolio page")
	resolveWebsiteCommand.Flags().StringVar(&resolvePortfolioURL, "portfolio-url", "", "Portfolio page the company was found on")
	resolveWebsiteCommand.Flags().BoolVarP(&resolveVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(resolveWebsiteCommand)
}

func resolveWebsiteCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	companyName := args[0]

	var cfg config.Config
	cfg.FromEnv()

	logger, err := newLogger(resolveVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	retry := providers.DefaultRetryPolicy()

	var entity providers.EntityLookup
	if cfg.KnowledgeAPIKey != "" {
		kg, err := providers.NewKnowledgeGraph(ctx, cfg.KnowledgeAPIKey, retry)
		if err != nil {
			return fmt.Errorf("failed to create knowledge graph client: %w", err)
		}
		entity = kg
	}

	var searcher providers.Searcher
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		gs, err := providers.NewGoogleSearch(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, retry)
		if err != nil {
			return fmt.Errorf("failed to create search client: %w", err)
		}
		searcher = gs
	}

	if entity == nil && searcher == nil && resolveHint == "" {
		return fmt.Errorf("no providers configured: set GOOGLE_KG_API_KEY or GOOGLE_API_KEY/GOOGLE_CSE_ID, or pass --hint")
	}

	resolver := website.NewResolver(entity, searcher, logger)
	site := resolver.Resolve(ctx, companyName, resolveHint, resolvePortfolioURL)
	if site == website.Unknown {
		fmt.Println("unknown")
		return nil
	}
	fmt.Println(site)
	return nil
}
