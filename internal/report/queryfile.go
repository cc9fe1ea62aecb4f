// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/review-bot/internal/arxiv"
	"github.com/pdiddy/review-bot/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A saved search can be reloaded later without re-querying the API.
type QueryFile struct {
	Query   QueryParams         `yaml:"query"`
	Results []types.PaperRecord `yaml:"results"`
	Summary QuerySummary        `yaml:"summary"`
}

// QueryParams stores the request parameters in a serializable form.
type QueryParams struct {
	SearchQuery string `yaml:"search_query"`
	Start       int    `yaml:"start"`
	MaxResults  int    `yaml:"max_results"`
	SortBy      string `yaml:"sort_by"`
	SortOrder   string `yaml:"sort_order"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Returned       int       `yaml:"returned"`
	TotalAvailable int       `yaml:"total_available"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves the request parameters and results to a YAML file.
func WriteQueryFile(path string, req arxiv.SearchRequest, res *arxiv.Result) error {
	qf := QueryFile{
		Query: QueryParams{
			SearchQuery: req.Query,
			Start:       req.Start,
			MaxResults:  req.MaxResults,
			SortBy:      string(req.SortBy),
			SortOrder:   string(req.SortOrder),
		},
		Results: res.Records,
		Summary: QuerySummary{
			Returned:       len(res.Records),
			TotalAvailable: res.TotalResults,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
