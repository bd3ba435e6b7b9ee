// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store exports summary tables to a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/ggcrime/ggcrime/crime"
)

// tables maps summary names to database tables.
var tables = map[string]string{
	"date":         "daily_counts",
	"month":        "monthly_counts",
	"district":     "district_monthly_counts",
	"weekday-hour": "weekday_hour_counts",
}

const schema = `
CREATE TABLE IF NOT EXISTS daily_counts (
	crime_type TEXT NOT NULL,
	date TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (crime_type, date)
);
CREATE TABLE IF NOT EXISTS monthly_counts (
	crime_type TEXT NOT NULL,
	month INTEGER NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (crime_type, month)
);
CREATE TABLE IF NOT EXISTS district_monthly_counts (
	crime_type TEXT NOT NULL,
	month INTEGER NOT NULL,
	district TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (crime_type, month, district)
);
CREATE TABLE IF NOT EXISTS weekday_hour_counts (
	crime_type TEXT NOT NULL,
	day_of_week INTEGER NOT NULL,
	hour INTEGER NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (crime_type, day_of_week, hour)
);
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	rows_read INTEGER NOT NULL,
	rows_kept INTEGER NOT NULL,
	rows_filtered INTEGER NOT NULL,
	rows_skipped INTEGER NOT NULL,
	first_date TEXT NOT NULL,
	last_date TEXT NOT NULL,
	generated_at TEXT NOT NULL
);
`

// Store is a SQLite database of summary tables.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens or creates the database at path and ensures its tables
// exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; one connection avoids busy errors.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db, clock: clockwork.NewRealClock()}, nil
}

// SetClock sets the time source used for run timestamps. Pass nil to
// reset to real time.
func (s *Store) SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	s.clock = c
}

func (s *Store) Close() error {
	return s.db.Close()
}

// A Run records one export.
type Run struct {
	ID           int64
	Source       string
	RowsRead     int
	RowsKept     int
	RowsFiltered int
	RowsSkipped  int
	FirstDate    string
	LastDate     string
	GeneratedAt  time.Time
}

// WriteSummaries replaces the summary tables with sums and records
// the run in a single transaction. It returns the new run's ID.
func (s *Store) WriteSummaries(ctx context.Context, source string, ds *crime.Dataset, sums *crime.Summaries) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, sum := range sums.All() {
		if err := writeSummary(ctx, tx, sum); err != nil {
			return 0, fmt.Errorf("writing %s summary: %w", sum.Name, err)
		}
	}

	first, last := "", ""
	if sums.Records > 0 {
		first, last = sums.First.String(), sums.Last.String()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, rows_read, rows_kept, rows_filtered, rows_skipped, first_date, last_date, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		source, ds.Read, len(ds.Records), ds.Filtered, ds.SkippedTotal(), first, last,
		s.clock.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

func writeSummary(ctx context.Context, tx *sql.Tx, sum *crime.Summary) error {
	tab, ok := tables[sum.Name]
	if !ok {
		return fmt.Errorf("no table for summary %q", sum.Name)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+tab); err != nil {
		return err
	}

	cols := make([]string, 0, len(sum.Keys)+1)
	for _, k := range sum.Keys {
		cols = append(cols, k.JSONName())
	}
	cols = append(cols, "count")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?%s)",
		tab, strings.Join(cols, ", "), strings.Repeat(", ?", len(cols)-1))
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]interface{}, len(cols))
	for i := range sum.Groups {
		g := &sum.Groups[i]
		for j, k := range sum.Keys {
			args[j] = dbValue(g.Key.Value(k))
		}
		args[len(cols)-1] = g.Count
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

// dbValue converts a group key field to a column value.
func dbValue(v interface{}) interface{} {
	switch v := v.(type) {
	case crime.CrimeType:
		return string(v)
	case crime.Day:
		return v.String()
	case time.Month:
		return int(v)
	case time.Weekday:
		return int(v)
	}
	return v
}

// Runs returns the recorded runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, rows_read, rows_kept, rows_filtered, rows_skipped, first_date, last_date, generated_at
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &r.Source, &r.RowsRead, &r.RowsKept, &r.RowsFiltered, &r.RowsSkipped, &r.FirstDate, &r.LastDate, &at); err != nil {
			return nil, err
		}
		if r.GeneratedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("run %d: bad timestamp %q: %w", r.ID, at, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Total returns the sum of the counts stored for summary name.
func (s *Store) Total(ctx context.Context, name string) (int, error) {
	tab, ok := tables[name]
	if !ok {
		return 0, fmt.Errorf("unknown summary %q", name)
	}
	var total sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT SUM(count) FROM "+tab).Scan(&total); err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
