// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/council-votes/pkg/types"
)

var schema = []string{
	`CREATE TABLE rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		designator TEXT NOT NULL,
		proposer TEXT,
		action TEXT,
		brief TEXT,
		annotation TEXT,
		mover TEXT,
		seconder TEXT,
		outcome TEXT,
		council_member TEXT,
		vote TEXT NOT NULL,
		meeting_date TEXT,
		source TEXT,
		page INTEGER,
		item_index INTEGER
	)`,
	`CREATE INDEX idx_rows_designator ON rows(designator)`,
	`CREATE INDEX idx_rows_member ON rows(council_member COLLATE NOCASE)`,
	`CREATE TABLE runs (
		run_id TEXT PRIMARY KEY,
		started_at TEXT,
		finished_at TEXT,
		input_dir TEXT,
		documents INTEGER,
		skipped INTEGER,
		items INTEGER,
		rows INTEGER,
		duplicates INTEGER
	)`,
}

// writeSQLite builds a fresh database next to path and renames it into
// place once every row is committed.
func writeSQLite(ctx context.Context, path string, rows []types.OutputRow, m Manifest) error {
	tmp, err := createTemp(path)
	if err != nil {
		return err
	}
	name := tmp.Name()
	tmp.Close()

	if err := buildSQLite(ctx, name, rows, m); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return commit(name, path)
}

func buildSQLite(ctx context.Context, path string, rows []types.OutputRow, m Manifest) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rows (designator, proposer, action, brief, annotation, mover, seconder,
			outcome, council_member, vote, meeting_date, source, page, item_index)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.Designator, r.Proposer, r.Action, r.Brief, r.Annotation, r.Mover, r.Seconder,
			string(r.Outcome), r.CouncilMember, string(r.Vote), r.MeetingDate, r.Source, r.Page, r.ItemIndex,
		)
		if err != nil {
			return fmt.Errorf("inserting row for %s: %w", r.Designator, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, input_dir, documents, skipped, items, rows, duplicates)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID.String(), formatTime(m.StartedAt), formatTime(m.FinishedAt), m.InputDir,
		m.Documents, m.Skipped, m.Items, m.Rows, m.Duplicates,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rows: %w", err)
	}
	return db.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
