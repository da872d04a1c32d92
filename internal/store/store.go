// Package store caches parsed publication records in a local SQLite
// database for fast ID lookup and listing. The cache is an index, not a
// source of truth: it is rebuilt wholesale from the spreadsheet and can
// be deleted at any time.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/neuropoly/bibsync/internal/record"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS records (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  title TEXT NOT NULL,
  venue TEXT,
  year INTEGER,
  authors TEXT,
  impact TEXT,
  url TEXT,
  labels TEXT,
  prize TEXT,
  pages TEXT,
  location TEXT
);
CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);
CREATE INDEX IF NOT EXISTS idx_records_year ON records(year);
CREATE TABLE IF NOT EXISTS _meta (
  key TEXT PRIMARY KEY,
  value TEXT
);
`

// Store is a handle on the record cache.
type Store struct {
	db *sql.DB
}

// Open opens the cache at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Rebuild replaces the cache contents with the given records in one
// transaction and stamps the rebuild time.
func (s *Store) Rebuild(records []record.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records
  (id, kind, title, venue, year, authors, impact, url, labels, prize, pages, location)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, string(r.Kind), r.Title, r.Venue, r.Year,
			r.AuthorString(), r.Impact, r.URL, r.Labels, r.Prize, r.Pages, r.Location); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('last_rebuild', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("stamping rebuild: %w", err)
	}

	return tx.Commit()
}

// LastRebuild returns when the cache was last rebuilt, or the zero time
// if it never was.
func (s *Store) LastRebuild() (time.Time, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM _meta WHERE key = 'last_rebuild'").Scan(&value)
	if err == sql.ErrNoRows || (err == nil && !value.Valid) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value.String)
}

const selectColumns = "id, kind, title, venue, year, authors, impact, url, labels, prize, pages, location"

// Get returns the cached records with the given IDs, in the requested
// order. Unknown IDs are simply absent from the result.
func (s *Store) Get(ids []string) ([]record.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		fmt.Sprintf("SELECT %s FROM records WHERE id IN (%s)", selectColumns, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]record.Record, len(ids))
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []record.Record
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// List returns cached records ordered by year then ID, optionally
// narrowed to one kind and a minimum year.
func (s *Store) List(kind record.Kind, minYear int) ([]record.Record, error) {
	query := fmt.Sprintf("SELECT %s FROM records WHERE 1=1", selectColumns)
	var args []any
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, string(kind))
	}
	if minYear != 0 {
		query += " AND year >= ?"
		args = append(args, minYear)
	}
	query += " ORDER BY year, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []record.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRecord(rows *sql.Rows) (record.Record, error) {
	var r record.Record
	var kind, authors string
	if err := rows.Scan(&r.ID, &kind, &r.Title, &r.Venue, &r.Year, &authors,
		&r.Impact, &r.URL, &r.Labels, &r.Prize, &r.Pages, &r.Location); err != nil {
		return record.Record{}, fmt.Errorf("scanning record: %w", err)
	}
	r.Kind = record.Kind(kind)
	r.Authors = record.SplitAuthors(authors)
	return r, nil
}
