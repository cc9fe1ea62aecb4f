package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-bot/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past searches recorded in the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		filter, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := store.Recent(filter, limit)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}
		history.FormatRuns(runs, os.Stdout)
		return nil
	},
}

func init() {
	historyCmd.Flags().String("query", "", "only show searches whose query contains this substring")
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (0 uses the configured default)")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
