// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/review-bot/pkg/types"
)

// Result is the parsed outcome of one API call: the records in feed
// order plus the total number of matches the API reports for the query
// (which can exceed the number of entries returned).
type Result struct {
	TotalResults int
	StartIndex   int
	Records      []types.PaperRecord
}

// Atom feed XML structures. Comment, journal reference, and the primary
// category live in the arXiv extension namespace.
type feed struct {
	XMLName      xml.Name `xml:"http://www.w3.org/2005/Atom feed"`
	TotalResults int      `xml:"http://a9.com/-/spec/opensearch/1.1/ totalResults"`
	StartIndex   int      `xml:"http://a9.com/-/spec/opensearch/1.1/ startIndex"`
	Entries      []entry  `xml:"entry"`
}

type entry struct {
	ID              string     `xml:"id"`
	Title           string     `xml:"title"`
	Summary         string     `xml:"summary"`
	Published       string     `xml:"published"`
	Updated         string     `xml:"updated"`
	Authors         []author   `xml:"author"`
	Categories      []category `xml:"category"`
	Links           []link     `xml:"link"`
	Comment         string     `xml:"http://arxiv.org/schemas/atom comment"`
	JournalRef      string     `xml:"http://arxiv.org/schemas/atom journal_ref"`
	PrimaryCategory category   `xml:"http://arxiv.org/schemas/atom primary_category"`
}

type author struct {
	Name string `xml:"name"`
}

type category struct {
	Term string `xml:"term,attr"`
}

type link struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

// ParseFeed decodes an arXiv Atom response into a Result, preserving the
// entry order returned by the API. A body that is not a well-formed Atom
// feed fails the whole parse; there is no structure to salvage from a
// malformed top-level document.
func ParseFeed(r io.Reader) (*Result, error) {
	var f feed
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	res := &Result{
		TotalResults: f.TotalResults,
		StartIndex:   f.StartIndex,
	}
	for _, e := range f.Entries {
		res.Records = append(res.Records, e.record())
	}
	return res, nil
}

// record converts one feed entry into a PaperRecord. Missing optional
// fields map to empty values rather than errors.
func (e entry) record() types.PaperRecord {
	p := types.PaperRecord{
		ID:              ExtractID(e.ID),
		Title:           strings.TrimSpace(e.Title),
		Abstract:        strings.TrimSpace(e.Summary),
		Comment:         strings.TrimSpace(e.Comment),
		JournalRef:      strings.TrimSpace(e.JournalRef),
		PrimaryCategory: e.PrimaryCategory.Term,
		AbstractURL:     e.ID,
	}

	for _, a := range e.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range e.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}

	// Dates are parsed leniently: a malformed date leaves the field zero
	// instead of failing the entry.
	if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
		p.Published = t
	}
	if t, err := time.Parse(time.RFC3339, e.Updated); err == nil {
		p.Updated = t
	}

	// Prefer the link titled "pdf"; fall back to the abstract page.
	p.PDFURL = e.ID
	for _, l := range e.Links {
		if l.Title == "pdf" {
			p.PDFURL = l.Href
			break
		}
	}

	return p
}

// ExtractID pulls the bare arXiv ID from an entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func ExtractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return idURL
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
