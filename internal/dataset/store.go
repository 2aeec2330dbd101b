// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/council-votes/pkg/types"
)

const defaultLimit = 100

// Store reads a dataset written in the sqlite format.
type Store struct {
	db *sql.DB
}

// OpenStore opens the SQLite dataset at path. The file must already exist.
func OpenStore(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// likeEscaper quotes LIKE wildcards so Query.Text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Query holds lookup filters. Empty fields do not filter.
type Query struct {
	// Designator matches the item designator exactly.
	Designator string

	// Member matches the council member name, ignoring case.
	Member string

	// Vote filters by vote category.
	Vote types.Vote

	// Text is a substring searched in brief and annotation.
	Text string

	// Limit caps the number of rows. Zero uses the default of 100.
	Limit int
}

// Lookup returns rows matching q ordered by designator and member.
func (s *Store) Lookup(ctx context.Context, q Query) ([]types.OutputRow, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT designator, proposer, action, brief, annotation, mover, seconder,
			outcome, council_member, vote, meeting_date, source, page, item_index
		FROM rows
		WHERE 1=1`)

	if q.Designator != "" {
		qb.WriteString(` AND designator = ?`)
		args = append(args, q.Designator)
	}
	if q.Member != "" {
		qb.WriteString(` AND council_member = ? COLLATE NOCASE`)
		args = append(args, q.Member)
	}
	if q.Vote != "" {
		qb.WriteString(` AND vote = ?`)
		args = append(args, strings.ToLower(string(q.Vote)))
	}
	if q.Text != "" {
		pattern := "%" + likeEscaper.Replace(q.Text) + "%"
		qb.WriteString(` AND (brief LIKE ? ESCAPE '\' OR annotation LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	qb.WriteString(` ORDER BY designator, council_member, id LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}
	defer rows.Close()

	var results []types.OutputRow
	for rows.Next() {
		var (
			r       types.OutputRow
			outcome string
			vote    string
			member  sql.NullString
			date    sql.NullString
		)
		if err := rows.Scan(
			&r.Designator, &r.Proposer, &r.Action, &r.Brief, &r.Annotation, &r.Mover, &r.Seconder,
			&outcome, &member, &vote, &date, &r.Source, &r.Page, &r.ItemIndex,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Outcome = types.Outcome(outcome)
		r.Vote = types.Vote(vote)
		if member.Valid {
			r.CouncilMember = &member.String
		}
		if date.Valid {
			r.MeetingDate = &date.String
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LastRun returns the manifest of the run that produced the dataset.
func (s *Store) LastRun(ctx context.Context) (Manifest, error) {
	var (
		m                 Manifest
		runID             string
		started, finished string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, finished_at, input_dir, documents, skipped, items, rows, duplicates
		 FROM runs ORDER BY finished_at DESC LIMIT 1`,
	).Scan(&runID, &started, &finished, &m.InputDir, &m.Documents, &m.Skipped, &m.Items, &m.Rows, &m.Duplicates)
	if err != nil {
		if err == sql.ErrNoRows {
			return Manifest{}, fmt.Errorf("dataset has no recorded run")
		}
		return Manifest{}, fmt.Errorf("reading run: %w", err)
	}

	if m.RunID, err = uuid.Parse(runID); err != nil {
		return Manifest{}, fmt.Errorf("parsing run id %q: %w", runID, err)
	}
	m.Format = types.FormatSQLite
	m.StartedAt = parseTime(started)
	m.FinishedAt = parseTime(finished)
	return m, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
