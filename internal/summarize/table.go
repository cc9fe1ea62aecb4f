// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Table is a CSV file loaded into memory: a header row plus data rows.
// The summarizer reads the export produced by "review-bot search --csv"
// and writes it back after every processed row so an interrupted run
// loses nothing.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads a CSV file. An empty file or one without a header row
// is an error.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// Write saves the table back to path.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// Column returns the index of the named column, or -1 if absent.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// EnsureColumn appends a column with the given name if it does not
// exist, padding every row. It reports whether the table was modified.
func (t *Table) EnsureColumn(name string) bool {
	if t.Column(name) >= 0 {
		t.pad()
		return false
	}
	t.Header = append(t.Header, name)
	t.pad()
	return true
}

// pad extends short rows with empty cells up to the header width.
func (t *Table) pad() {
	for i, row := range t.Rows {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
}

// Cell returns the value at (row, col), tolerating short rows.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
