package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-bot/internal/arxiv"
	"github.com/pdiddy/review-bot/internal/history"
	"github.com/pdiddy/review-bot/internal/report"
)

// csvAutoName is the sentinel a bare --csv flag resolves to; it selects
// the timestamped default filename.
const csvAutoName = "auto"

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Query the arXiv API for papers",
	Long: `Search queries the arXiv API with a structured search string. Combine
field:term pairs using AND, OR, and ANDNOT; use "+" for spaces inside terms.

Examples:
  review-bot search "cat:cs.AI+OR+cat:cs.LG" --max-results 5 --sort-by submittedDate
  review-bot search "ti:quantum+computing" --sort-order ascending
  review-bot search "all:geology" --csv=results.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetInt("start")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		sortByArg, _ := cmd.Flags().GetString("sort-by")
		sortOrderArg, _ := cmd.Flags().GetString("sort-order")

		// Enum and range validation happens before any network call.
		sortBy, err := arxiv.ParseSortBy(sortByArg)
		if err != nil {
			return err
		}
		sortOrder, err := arxiv.ParseSortOrder(sortOrderArg)
		if err != nil {
			return err
		}

		req := arxiv.SearchRequest{
			Query:      args[0],
			Start:      start,
			MaxResults: maxResults,
			SortBy:     sortBy,
			SortOrder:  sortOrder,
		}
		if err := req.Validate(); err != nil {
			return err
		}

		client := arxiv.NewClient(searchConfig())
		res, err := client.Search(cmd.Context(), req)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := report.FormatJSON(res, os.Stdout); err != nil {
				return err
			}
		} else {
			report.FormatText(res, os.Stdout)
		}

		if cmd.Flags().Changed("csv") {
			name, _ := cmd.Flags().GetString("csv")
			if name == csvAutoName {
				name = ""
			}
			path, err := report.WriteCSV(res.Records, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Results saved to: %s\n", path)
		}

		if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
			if err := report.WriteQueryFile(savePath, req, res); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Query saved to: %s\n", savePath)
		}

		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			recordHistory(req, res)
		}
		return nil
	},
}

// recordHistory stores the run in the local history database. History is
// a convenience; failures warn but never fail the search.
func recordHistory(req arxiv.SearchRequest, res *arxiv.Result) {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history store: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordSearch(req, res); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record search: %v\n", err)
	}
}

func init() {
	searchCmd.Flags().Int("start", 0, "starting index for results")
	searchCmd.Flags().Int("max-results", 10, "maximum number of results to return")
	searchCmd.Flags().String("sort-by", "relevance", "sort field: relevance, lastUpdatedDate, or submittedDate")
	searchCmd.Flags().String("sort-order", "descending", "sort order: ascending or descending")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("csv", "", "save results to a CSV file: --csv=FILE, or bare --csv for a timestamped name")
	searchCmd.Flags().Lookup("csv").NoOptDefVal = csvAutoName
	searchCmd.Flags().String("save", "", "save query parameters and results to a YAML file")
	searchCmd.Flags().Bool("no-history", false, "skip recording this search in the history database")

	rootCmd.AddCommand(searchCmd)
}
