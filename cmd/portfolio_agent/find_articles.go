package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-scout/internal/articles"
	"github.com/jonathan/portfolio-scout/internal/config"
	"github.com/jonathan/portfolio-scout/internal/providers"
	"github.com/jonathan/portfolio-scout/internal/scoring"
)

var findArticlesCommand = &cobra.Command{
	Use:   "find-articles <company name>",
	Short: "Find deal articles for a company",
	Long: `Searches for articles covering the deal between a company and its investor,
scores the candidates, and prints the top selections. Useful for debugging
article selection without a full run.`,
	Args: cobra.ExactArgs(1),
	RunE: findArticlesCmd,
}

var (
	findInvestor string
	findWebsite  string
	findVerbose  bool
)

func init() {
	findArticlesCommand.Flags().StringVar(&findInvestor, "investor", "", "Investor name to include in the deal query")
	findArticlesCommand.Flags().StringVar(&findWebsite, "website", "", "Company website, excluded from the article candidates")
	findArticlesCommand.Flags().BoolVarP(&findVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(findArticlesCommand)
}

func findArticlesCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	companyName := args[0]

	var cfg config.Config
	cfg.FromEnv()

	if cfg.DealAPIKey == "" || cfg.DealEngineID == "" {
		return fmt.Errorf("deal search requires GOOGLE_DEAL_API_KEY/GOOGLE_DEAL_CX (or GOOGLE_API_KEY/GOOGLE_CSE_ID)")
	}

	logger, err := newLogger(findVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	search, err := providers.NewGoogleSearch(ctx, cfg.DealAPIKey, cfg.DealEngineID, providers.DefaultRetryPolicy())
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	selector := articles.NewSelector(search, scoring.DefaultTable(), logger)
	found, err := selector.Select(ctx, companyName, findInvestor, findWebsite)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Println("no articles found")
		return nil
	}
	for _, u := range found {
		fmt.Println(u)
	}
	return nil
}
