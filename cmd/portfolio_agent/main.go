// Package main provides the entry point for the portfolio enrichment CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_agent",
	Short: "Portfolio Scout enrichment pipeline",
	Long:  "Portfolio Scout crawls investor portfolio pages, extracts the listed companies, resolves each company's official website, and finds recent deal articles, writing one normalized record per company.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
