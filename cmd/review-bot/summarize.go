package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-bot/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate AI summaries for papers exported to CSV",
	Long: `Summarize reads a CSV file produced by "review-bot search --csv", asks
the Gemini API for a short summary of each paper, and writes it into an
ai_abstract column. Rows that already carry a summary are skipped, and the
file is saved after every paper, so an interrupted run can simply be
re-run.

The API key is read from .secrets/aistudio-google-api-key or the
summary.api_key config setting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		if _, err := os.Stat(csvPath); err != nil {
			return fmt.Errorf("CSV file not found: %s", csvPath)
		}

		cfg := summaryConfig()
		if model, _ := cmd.Flags().GetString("model"); model != "" {
			cfg.Model = model
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("no Gemini API key configured (add .secrets/aistudio-google-api-key or set summary.api_key)")
		}

		backend := &summarize.GeminiBackend{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			MaxRetries: cfg.MaxRetries,
			Client:     &http.Client{Timeout: cfg.Timeout},
		}

		summary, err := summarize.Run(cmd.Context(), backend, csvPath, cfg, os.Stderr)
		fmt.Fprintf(os.Stderr, "\nSummarized: %d  Skipped: %d  Failed: %d\n",
			summary.Summarized, summary.Skipped, summary.Failed)
		if err != nil {
			return err
		}
		if summary.HasFailures() {
			return fmt.Errorf("%d of %d papers failed", summary.Failed, summary.Total())
		}
		return nil
	},
}

func init() {
	summarizeCmd.Flags().String("csv", "", "CSV file containing the papers to summarize")
	summarizeCmd.MarkFlagRequired("csv")
	summarizeCmd.Flags().String("model", "", "override the configured AI model")

	rootCmd.AddCommand(summarizeCmd)
}
