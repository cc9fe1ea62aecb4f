// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/review-bot/pkg/types"
)

// CSVHeader is the column layout of exported result files. The
// summarization stage appends its own ai_abstract column on first run.
var CSVHeader = []string{"title", "authors", "published", "link", "summary"}

// CSVFilename resolves the target filename for an export: an empty name
// becomes a timestamped default, and a missing .csv extension is appended.
func CSVFilename(name string, now time.Time) string {
	if name == "" {
		return fmt.Sprintf("arxiv_results_%s.csv", now.Format("20060102_150405"))
	}
	if !strings.HasSuffix(name, ".csv") {
		return name + ".csv"
	}
	return name
}

// WriteCSV saves the records to a CSV file and returns the resolved
// filename. Authors are joined with "; " into a single column.
func WriteCSV(records []types.PaperRecord, name string) (string, error) {
	path := CSVFilename(name, time.Now())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, p := range records {
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format(dateFmt)
		}
		row := []string{p.Title, strings.Join(p.Authors, "; "), published, p.PDFURL, p.Abstract}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing row for %s: %w", p.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	return path, nil
}
