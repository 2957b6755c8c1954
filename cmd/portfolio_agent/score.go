package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-scout/internal/scoring"
)

var scoreCommand = &cobra.Command{
	Use:   "score <url> [url...]",
	Short: "Score article URLs for deal relevance",
	Long: `Applies the deterministic relevance scorer to one or more URLs and prints
each score. No network calls are made; the score depends only on the URL.`,
	Args: cobra.MinimumNArgs(1),
	RunE: scoreCmd,
}

var scoreLinkSignals bool

func init() {
	scoreCommand.Flags().BoolVar(&scoreLinkSignals, "link-signals", false, "Use the legacy link-signal scoring table")

	rootCmd.AddCommand(scoreCommand)
}

func scoreCmd(_ *cobra.Command, args []string) error {
	table := scoring.DefaultTable()
	if scoreLinkSignals {
		table = scoring.LinkSignalTable()
	}

	for _, u := range args {
		fmt.Printf("%4d  %s\n", table.Score(u), u)
	}
	return nil
}
