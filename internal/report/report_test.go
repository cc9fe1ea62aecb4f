// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-bot/internal/arxiv"
	"github.com/pdiddy/review-bot/pkg/types"
)

func sampleResult() *arxiv.Result {
	return &arxiv.Result{
		TotalResults: 42,
		Records: []types.PaperRecord{
			{
				ID:          "2301.07041",
				Title:       "Attention Everywhere",
				Authors:     []string{"Alice Doe", "Bob Roe"},
				Abstract:    "We study attention.",
				Comment:     "12 pages",
				JournalRef:  "J. Testing 1 (2023)",
				Categories:  []string{"cs.AI", "cs.LG"},
				Published:   time.Date(2023, 1, 17, 12, 0, 0, 0, time.UTC),
				Updated:     time.Date(2023, 2, 1, 9, 30, 0, 0, time.UTC),
				PDFURL:      "http://arxiv.org/pdf/2301.07041v1",
				AbstractURL: "http://arxiv.org/abs/2301.07041v1",
			},
			{
				ID:       "2302.00001",
				Title:    "Minimal Entry",
				Authors:  []string{"Carol Poe"},
				Abstract: "No optional fields.",
				PDFURL:   "http://arxiv.org/abs/2302.00001v2",
			},
		},
	}
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(sampleResult(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Found 2 results (42 total matches)")
	assert.Contains(t, out, "[1] Attention Everywhere")
	assert.Contains(t, out, "[2] Minimal Entry")
	assert.Contains(t, out, "Alice Doe, Bob Roe")
	assert.Contains(t, out, "Published:")
	assert.Contains(t, out, "2023-01-17")
	assert.Contains(t, out, "J. Testing 1 (2023)")
	assert.Contains(t, out, "cs.AI, cs.LG")
	// Optional fields of the second record are simply omitted.
	assert.NotContains(t, out, "Journal Reference: \n")
}

func TestFormatTextNoResults(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&arxiv.Result{TotalResults: 0}, &buf)
	assert.Equal(t, "No results found for your search query.\n", buf.String())
}

func TestFormatTextTruncatesAbstract(t *testing.T) {
	res := sampleResult()
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	res.Records[0].Abstract = string(long)

	var buf bytes.Buffer
	FormatText(res, &buf)
	assert.Contains(t, buf.String(), string(long[:abstractPreview])+"...")
	assert.NotContains(t, buf.String(), string(long))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleResult(), &buf))

	var records []types.PaperRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2301.07041", records[0].ID)
	assert.Equal(t, []string{"Alice Doe", "Bob Roe"}, records[0].Authors)
}
