// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv builds arXiv API search requests and parses the Atom
// feed responses into PaperRecords.
package arxiv

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SortBy selects the field used to order results.
type SortBy string

const (
	SortByRelevance       SortBy = "relevance"
	SortByLastUpdatedDate SortBy = "lastUpdatedDate"
	SortBySubmittedDate   SortBy = "submittedDate"
)

// SortOrder selects the direction results are ordered in.
type SortOrder string

const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

// ParseSortBy validates a user-supplied sort field.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortByRelevance, SortByLastUpdatedDate, SortBySubmittedDate:
		return SortBy(s), nil
	}
	return "", fmt.Errorf("invalid sort field %q (choose relevance, lastUpdatedDate, or submittedDate)", s)
}

// ParseSortOrder validates a user-supplied sort order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortOrderAscending, SortOrderDescending:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("invalid sort order %q (choose ascending or descending)", s)
}

// SearchRequest holds the parameters of a single arXiv API query. It is
// built once per invocation and never mutated afterwards.
//
// Query uses the arXiv search grammar: field:term pairs (ti, au, abs, co,
// jr, cat, rn, all) joined with AND, OR, or ANDNOT, with "+" standing for
// a space inside terms. Field prefixes and operator placement are not
// validated locally; a malformed query is passed through and rejected by
// the remote API.
type SearchRequest struct {
	Query      string
	Start      int
	MaxResults int
	SortBy     SortBy
	SortOrder  SortOrder
}

// Validate checks the numeric and enum constraints. The query string
// itself is deliberately not validated.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("search query is empty")
	}
	if r.Start < 0 {
		return fmt.Errorf("start must be >= 0, got %d", r.Start)
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("max results must be > 0, got %d", r.MaxResults)
	}
	if _, err := ParseSortBy(string(r.SortBy)); err != nil {
		return err
	}
	if _, err := ParseSortOrder(string(r.SortOrder)); err != nil {
		return err
	}
	return nil
}

// URL assembles the fully qualified request URL against base.
//
// The user-level "+" means a literal space, so the query is rewritten
// with real spaces first and the whole parameter set is percent-encoded
// exactly once by url.Values. A "+" typed by the user and the "+" the
// encoder emits for a space therefore never collide.
func (r SearchRequest) URL(base string) string {
	v := url.Values{}
	v.Set("search_query", strings.ReplaceAll(r.Query, "+", " "))
	v.Set("start", strconv.Itoa(r.Start))
	v.Set("max_results", strconv.Itoa(r.MaxResults))
	v.Set("sortBy", string(r.SortBy))
	v.Set("sortOrder", string(r.SortOrder))
	return base + "?" + v.Encode()
}
