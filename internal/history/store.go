// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists past search runs in a local SQLite database
// so earlier queries and their hits can be reviewed without re-querying
// the API.
package history

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/review-bot/internal/arxiv"
	"github.com/pdiddy/review-bot/pkg/types"
)

const dbFile = "review-bot.db"

// Store manages the search history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Run is one recorded search invocation.
type Run struct {
	ID           int64
	Query        string
	Start        int
	MaxResults   int
	SortBy       string
	SortOrder    string
	TotalResults int
	Returned     int
	CreatedAt    time.Time
}

// NewStore opens or creates the history database at cfg.Dir/review-bot.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			start INTEGER NOT NULL,
			max_results INTEGER NOT NULL,
			sort_by TEXT NOT NULL,
			sort_order TEXT NOT NULL,
			total_results INTEGER NOT NULL,
			returned INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			search_id INTEGER NOT NULL REFERENCES searches(id),
			arxiv_id TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			published TEXT,
			pdf_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_search ON papers(search_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordSearch inserts one search run and its returned papers.
func (s *Store) RecordSearch(req arxiv.SearchRequest, res *arxiv.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO searches (query, start, max_results, sort_by, sort_order, total_results, returned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Query, req.Start, req.MaxResults, string(req.SortBy), string(req.SortOrder),
		res.TotalResults, len(res.Records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting search: %w", err)
	}
	searchID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading search id: %w", err)
	}

	for _, p := range res.Records {
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format("2006-01-02")
		}
		_, err := tx.Exec(
			`INSERT INTO papers (search_id, arxiv_id, title, authors, published, pdf_url)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			searchID, p.ID, p.Title, strings.Join(p.Authors, "; "), published, p.PDFURL,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing search: %w", err)
	}
	return searchID, nil
}

// Recent returns the most recent runs, newest first. A filter substring
// restricts results to queries containing it; limit <= 0 falls back to
// the configured default.
func (s *Store) Recent(filter string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT id, query, start, max_results, sort_by, sort_order, total_results, returned, created_at
	          FROM searches`
	args := []any{}
	if filter != "" {
		query += ` WHERE query LIKE ?`
		args = append(args, "%"+filter+"%")
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Query, &r.Start, &r.MaxResults, &r.SortBy, &r.SortOrder,
			&r.TotalResults, &r.Returned, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Papers returns the papers recorded for one run, in feed order.
func (s *Store) Papers(searchID int64) ([]types.PaperRecord, error) {
	rows, err := s.db.Query(
		`SELECT arxiv_id, title, authors, published, pdf_url FROM papers WHERE search_id = ? ORDER BY rowid`,
		searchID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.PaperRecord
	for rows.Next() {
		var p types.PaperRecord
		var authors, published string
		if err := rows.Scan(&p.ID, &p.Title, &authors, &published, &p.PDFURL); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if authors != "" {
			p.Authors = strings.Split(authors, "; ")
		}
		if t, parseErr := time.Parse("2006-01-02", published); parseErr == nil {
			p.Published = t
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// FormatRuns writes runs as a human-readable table to w.
func FormatRuns(runs []Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded searches.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-40s  %-8s  %-10s  %-19s\n", "ID", "Query", "Hits", "Returned", "When")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		q := r.Query
		if len(q) > 40 {
			q = q[:37] + "..."
		}
		when := ""
		if !r.CreatedAt.IsZero() {
			when = r.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-5d  %-40s  %-8d  %-10d  %-19s\n", r.ID, q, r.TotalResults, r.Returned, when)
	}
}
