// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates AI summaries for papers exported to CSV.
// It processes only rows without a summary, so re-running after an
// interruption or a transient failure picks up where the last run stopped.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"golang.org/x/time/rate"

	"github.com/pdiddy/review-bot/pkg/types"
)

// summaryColumn is the CSV column the summarizer fills in.
const summaryColumn = "ai_abstract"

// AIBackend abstracts the Generative AI API so tests can supply a mock.
// Summarize handles one paper prompt and returns the model's reply.
type AIBackend interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// FatalError marks a backend failure that should abort the whole batch
// (bad API key, malformed request) rather than being recorded per paper.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// summaryPromptTmpl is the prompt sent to the model for each paper.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Summarize this scientific paper in a couple of sentences, focusing on:
1. The main research question or objective
2. Key findings and conclusions
3. Potential implications or applications

Title: {{.Title}}
Authors: {{.Authors}}
Original Abstract: {{.Abstract}}

If you cannot generate a summary, return only 'Unable to summarize'.
Only return the summary, nothing else.
`))

// BatchSummary holds counts from a batch summarization run.
type BatchSummary struct {
	Summarized int
	Skipped    int
	Failed     int
}

// Total returns the number of rows processed.
func (s BatchSummary) Total() int {
	return s.Summarized + s.Skipped + s.Failed
}

// HasFailures reports whether any rows failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Run summarizes every unsummarized row of the CSV at csvPath, writing
// the file back after each row. Per-row backend errors are recorded in
// the row and the batch continues; a FatalError aborts the run (the
// failing row still records the error first).
func Run(ctx context.Context, backend AIBackend, csvPath string, cfg types.SummaryConfig, w io.Writer) (BatchSummary, error) {
	table, err := ReadTable(csvPath)
	if err != nil {
		return BatchSummary{}, err
	}

	if table.EnsureColumn(summaryColumn) {
		if err := table.Write(csvPath); err != nil {
			return BatchSummary{}, err
		}
	}

	titleCol := table.Column("title")
	authorsCol := table.Column("authors")
	abstractCol := table.Column("summary")
	outCol := table.Column(summaryColumn)
	if titleCol < 0 || abstractCol < 0 {
		return BatchSummary{}, fmt.Errorf("%s is missing the title or summary column", csvPath)
	}

	var limiter *rate.Limiter
	if cfg.CallInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.CallInterval), 1)
	}

	var summary BatchSummary
	total := 0
	for _, row := range table.Rows {
		if outCol >= len(row) || row[outCol] == "" {
			total++
		}
	}
	if total == 0 {
		fmt.Fprintln(w, "All papers have been summarized.")
		return summary, nil
	}

	counter := 0
	for i := range table.Rows {
		if table.Cell(i, outCol) != "" {
			summary.Skipped++
			continue
		}
		counter++

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return summary, err
			}
		}

		prompt, err := renderPrompt(table.Cell(i, titleCol), table.Cell(i, authorsCol), table.Cell(i, abstractCol))
		if err != nil {
			return summary, fmt.Errorf("rendering prompt: %w", err)
		}

		text, err := backend.Summarize(ctx, prompt)
		if err != nil {
			table.Rows[i][outCol] = "Error: " + err.Error()
			summary.Failed++
			if writeErr := table.Write(csvPath); writeErr != nil {
				return summary, writeErr
			}

			var fatal *FatalError
			if errors.As(err, &fatal) {
				return summary, fmt.Errorf("summarizing paper %d/%d: %w", counter, total, err)
			}
			fmt.Fprintf(w, "failed  %d/%d: %v\n", counter, total, err)
			continue
		}

		table.Rows[i][outCol] = strings.TrimSpace(text)
		summary.Summarized++
		fmt.Fprintf(w, "summarized %d/%d: %s\n", counter, total, table.Cell(i, titleCol))

		// Save after each paper in case of interruption.
		if err := table.Write(csvPath); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// renderPrompt fills the summary template for one paper.
func renderPrompt(title, authors, abstract string) (string, error) {
	var b strings.Builder
	err := summaryPromptTmpl.Execute(&b, struct {
		Title    string
		Authors  string
		Abstract string
	}{title, authors, abstract})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
