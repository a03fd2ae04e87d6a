// Package sqlite implements the persistence store as a single SQLite file
// using database/sql with the pure-Go modernc.org/sqlite driver. The dataset
// is replaced wholesale on each pipeline run: records are written to a
// temporary database file inside one transaction, then renamed over the live
// path, so a failed write leaves the previous dataset intact.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

const schemaDDL = `
CREATE TABLE sightings (
	datetime         TEXT NOT NULL,
	date             TEXT NOT NULL,
	city             TEXT,
	state            TEXT,
	country          TEXT,
	shape            TEXT NOT NULL,
	duration_seconds REAL NOT NULL,
	description      TEXT,
	latitude         REAL NOT NULL,
	longitude        REAL NOT NULL,
	date_posted      TEXT
);
CREATE TABLE dataset_meta (
	replaced_at TEXT NOT NULL,
	row_count   INTEGER NOT NULL
);
`

const insertSQL = `INSERT INTO sightings
	(datetime, date, city, state, country, shape, duration_seconds, description, latitude, longitude, date_posted)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Store persists the canonical dataset to a SQLite file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store over the given database path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// ReplaceAll atomically replaces the entire stored dataset. The new dataset
// is built at <path>.tmp and renamed over the live file only after a
// successful commit; on any failure the previous dataset is untouched.
func (s *Store) ReplaceAll(ctx context.Context, records []domain.Sighting) error {
	tmp := s.path + ".tmp"
	os.Remove(tmp)

	if err := s.writeDataset(ctx, tmp, records); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("sqlite: swap dataset: %w", err)
	}

	s.logger.Info("dataset replaced", "path", s.path, "rows", len(records))
	return nil
}

func (s *Store) writeDataset(ctx context.Context, path string, records []domain.Sighting) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("sqlite: open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, insertArgs(rec)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: insert: %w", err)
		}
	}

	meta := "INSERT INTO dataset_meta (replaced_at, row_count) VALUES (?, ?)"
	if _, err := tx.ExecContext(ctx, meta, domain.Now().UTC().Format(time.RFC3339), len(records)); err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite: write meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func insertArgs(s domain.Sighting) []any {
	var datePosted any
	if s.DatePosted != nil {
		datePosted = s.DatePosted.Format(dateLayout)
	}
	return []any{
		s.Timestamp.Format(timestampLayout),
		s.Date.Format(dateLayout),
		nullIfEmpty(s.City),
		nullIfEmpty(s.State),
		nullIfEmpty(s.Country),
		s.Shape,
		s.DurationSeconds,
		nullIfEmpty(s.Description),
		s.Latitude,
		s.Longitude,
		datePosted,
	}
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// ScanAll bulk-reads the whole sightings table in insertion order. This is
// the one storage read of a session; all filtering happens in memory.
func (s *Store) ScanAll(ctx context.Context) ([]domain.Sighting, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT datetime, date, city, state, country, shape,
		duration_seconds, description, latitude, longitude, date_posted
		FROM sightings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan: %w", err)
	}
	defer rows.Close()

	var records []domain.Sighting
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: scan: %w", err)
	}

	s.logger.Info("dataset scanned", "path", s.path, "rows", len(records))
	return records, nil
}

func scanRow(rows *sql.Rows) (domain.Sighting, error) {
	var (
		rec                            domain.Sighting
		tsRaw, dateRaw                 string
		city, state, country, desc, dp sql.NullString
	)
	if err := rows.Scan(&tsRaw, &dateRaw, &city, &state, &country, &rec.Shape,
		&rec.DurationSeconds, &desc, &rec.Latitude, &rec.Longitude, &dp); err != nil {
		return domain.Sighting{}, fmt.Errorf("sqlite: scan row: %w", err)
	}

	ts, err := time.Parse(timestampLayout, tsRaw)
	if err != nil {
		return domain.Sighting{}, fmt.Errorf("sqlite: corrupt datetime %q: %w", tsRaw, err)
	}
	date, err := time.Parse(dateLayout, dateRaw)
	if err != nil {
		return domain.Sighting{}, fmt.Errorf("sqlite: corrupt date %q: %w", dateRaw, err)
	}

	rec.Timestamp = ts
	rec.Date = date
	rec.City = city.String
	rec.State = state.String
	rec.Country = country.String
	rec.Description = desc.String
	if dp.Valid {
		posted, err := time.Parse(dateLayout, dp.String)
		if err != nil {
			return domain.Sighting{}, fmt.Errorf("sqlite: corrupt date_posted %q: %w", dp.String, err)
		}
		rec.DatePosted = &posted
	}
	return rec, nil
}
