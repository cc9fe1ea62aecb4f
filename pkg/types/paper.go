// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the review-bot pipeline.
package types

import "time"

// PaperRecord holds the metadata of a single paper as returned by the
// arXiv search API. Records are read-only after parsing and live only
// for the duration of a run.
type PaperRecord struct {
	// ID is the bare arXiv identifier (e.g. "2301.07041"), version suffix stripped.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with surrounding whitespace trimmed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Comment is the author comment (pages, figures, venue notes). Often absent.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// JournalRef is the journal reference for published papers. Often absent.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`

	// Categories is the set of subject category codes (e.g. "cs.AI").
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the primary subject category code.
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// Published is the date the first version was submitted.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the date the retrieved version was submitted.
	Updated time.Time `json:"updated" yaml:"updated"`

	// PDFURL links to the paper PDF. Falls back to the abstract page when
	// the feed carries no pdf link.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// AbstractURL links to the paper's abstract page.
	AbstractURL string `json:"abstract_url" yaml:"abstract_url"`
}
