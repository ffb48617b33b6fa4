// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps the cleaned dataset in a SQLite database for ad-hoc
// queries by year, journal and title text.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

const dbFile = "cord.db"

// Store manages the record index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index database at cfg.Dir/cord.db and
// creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultIndexDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
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
		`CREATE TABLE IF NOT EXISTS records (
			seq INTEGER PRIMARY KEY,
			publish_time TEXT,
			title TEXT NOT NULL,
			journal TEXT NOT NULL,
			year INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_year ON records(year)`,
		`CREATE INDEX IF NOT EXISTS idx_records_journal ON records(journal)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			source TEXT,
			records INTEGER,
			ingested_at TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an index run.
type IngestSummary struct {
	Source   string
	Replaced int
	Indexed  int
}

// Ingest replaces the indexed records with records in a single
// transaction. source names the CSV the records came from.
func (s *Store) Ingest(ctx context.Context, source string, records []types.Record, w io.Writer) (IngestSummary, error) {
	summary := IngestSummary{Source: source}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&summary.Replaced); err != nil {
		return summary, fmt.Errorf("counting records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return summary, fmt.Errorf("deleting old records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (seq, publish_time, title, journal, year) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		published := ""
		if !r.PublishTime.IsZero() {
			published = r.PublishTime.Format(time.RFC3339Nano)
		}
		if _, err := stmt.ExecContext(ctx, i, published, r.Title, r.Journal, r.Year); err != nil {
			return summary, fmt.Errorf("inserting row %d: %w", i, err)
		}
	}
	summary.Indexed = len(records)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (id, source, records, ingested_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET source=excluded.source, records=excluded.records,
			ingested_at=excluded.ingested_at`,
		source, len(records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return summary, fmt.Errorf("updating ingest status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "indexed %d records from %s (replaced %d)\n", summary.Indexed, source, summary.Replaced)
	return summary, nil
}

// QueryOptions holds filters for Query. Zero fields do not filter.
type QueryOptions struct {
	// Year filters by publication year.
	Year int

	// Journal filters by exact journal name.
	Journal string

	// TitleContains filters by a case-insensitive title substring.
	TitleContains string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Query returns indexed records matching opts in dataset order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT publish_time, title, journal, year FROM records WHERE 1=1`)
	if opts.Year != 0 {
		qb.WriteString(` AND year = ?`)
		args = append(args, opts.Year)
	}
	if opts.Journal != "" {
		qb.WriteString(` AND journal = ?`)
		args = append(args, opts.Journal)
	}
	if opts.TitleContains != "" {
		qb.WriteString(` AND instr(lower(title), lower(?)) > 0`)
		args = append(args, opts.TitleContains)
	}
	qb.WriteString(` ORDER BY seq LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []types.Record
	for rows.Next() {
		var (
			r         types.Record
			published sql.NullString
		)
		if err := rows.Scan(&published, &r.Title, &r.Journal, &r.Year); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if published.Valid && published.String != "" {
			r.PublishTime, _ = time.Parse(time.RFC3339Nano, published.String)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// YearlyTotals counts indexed records per year, ascending by year.
func (s *Store) YearlyTotals(ctx context.Context) ([]types.YearCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, count(*) FROM records GROUP BY year ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("querying yearly totals: %w", err)
	}
	defer rows.Close()

	var out []types.YearCount
	for rows.Next() {
		var yc types.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}

// Count returns the number of indexed records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
