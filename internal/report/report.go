// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders search results for the terminal and exports
// them to CSV and YAML files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/review-bot/internal/arxiv"
)

// ANSI color codes for terminal output.
const (
	colorTitle  = "\033[1;34m"
	colorAuthor = "\033[0;32m"
	colorDate   = "\033[0;36m"
	colorLink   = "\033[1;35m"
	colorDetail = "\033[0;37m"
	colorReset  = "\033[0m"
)

const dateFmt = "2006-01-02"

// abstractPreview is how many characters of the abstract the text
// renderer shows per paper.
const abstractPreview = 200

// FormatText writes a colored, human-readable listing of the results to w.
// A query with zero total matches prints a single message instead of an
// empty listing.
func FormatText(res *arxiv.Result, w io.Writer) {
	if res.TotalResults == 0 {
		fmt.Fprintln(w, "No results found for your search query.")
		return
	}

	fmt.Fprintf(w, "\nFound %d results (%d total matches):\n\n", len(res.Records), res.TotalResults)
	for i, p := range res.Records {
		fmt.Fprintf(w, "%s[%d] %s%s\n", colorTitle, i+1, p.Title, colorReset)
		fmt.Fprintf(w, "%sAuthors:%s %s\n", colorAuthor, colorReset, strings.Join(p.Authors, ", "))
		if !p.Published.IsZero() {
			fmt.Fprintf(w, "%sPublished:%s %s\n", colorDate, colorReset, p.Published.Format(dateFmt))
		}
		if !p.Updated.IsZero() {
			fmt.Fprintf(w, "%sUpdated:%s %s\n", colorDate, colorReset, p.Updated.Format(dateFmt))
		}
		if p.JournalRef != "" {
			fmt.Fprintf(w, "%sJournal Reference:%s %s\n", colorDetail, colorReset, p.JournalRef)
		}
		if p.Comment != "" {
			fmt.Fprintf(w, "%sComment:%s %s\n", colorDetail, colorReset, p.Comment)
		}
		if len(p.Categories) > 0 {
			fmt.Fprintf(w, "%sCategories:%s %s\n", colorDetail, colorReset, strings.Join(p.Categories, ", "))
		}
		fmt.Fprintf(w, "%sLink:%s %s\n", colorLink, colorReset, p.PDFURL)
		fmt.Fprintf(w, "%sSummary:%s %s\n", colorDetail, colorReset, truncate(p.Abstract, abstractPreview))
		fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", 80))
	}
}

// FormatJSON writes the records as indented JSON to w.
func FormatJSON(res *arxiv.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Records)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
