// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pdiddy/council-votes/pkg/types"
)

const defaultPostgresTable = "council_votes"

// pgColumns are the staged columns in COPY order.
var pgColumns = []string{
	"designator", "proposer", "action", "brief", "annotation", "mover", "seconder",
	"outcome", "council_member", "vote", "meeting_date", "source", "page", "item_index", "run_id",
}

// postgresTable returns the target table name for cfg.
func postgresTable(cfg types.OutputConfig) string {
	if cfg.PostgresTable == "" {
		return defaultPostgresTable
	}
	return cfg.PostgresTable
}

// writePostgres copies rows into a staging table and swaps it in for the
// target table in the same transaction, so readers see either the previous
// dataset or the new one.
func writePostgres(ctx context.Context, cfg types.OutputConfig, rows []types.OutputRow, m Manifest) error {
	conn, err := pgx.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer conn.Close(ctx)

	table := postgresTable(cfg)
	target := pgx.Identifier{table}
	staging := pgx.Identifier{table + "_staging"}
	runs := pgx.Identifier{table + "_runs"}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DROP TABLE IF EXISTS ` + staging.Sanitize(),
		`CREATE TABLE ` + staging.Sanitize() + ` (
			designator text NOT NULL,
			proposer text,
			action text,
			brief text,
			annotation text,
			mover text,
			seconder text,
			outcome text,
			council_member text,
			vote text NOT NULL,
			meeting_date text,
			source text,
			page integer,
			item_index integer,
			run_id uuid NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + runs.Sanitize() + ` (
			run_id uuid PRIMARY KEY,
			started_at timestamptz,
			finished_at timestamptz,
			input_dir text,
			documents integer,
			skipped integer,
			items integer,
			rows integer,
			duplicates integer
		)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("preparing staging table: %w", err)
		}
	}

	n, err := tx.CopyFrom(ctx, staging, pgColumns, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		return copyValues(rows[i], m), nil
	}))
	if err != nil {
		return fmt.Errorf("copying rows: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copied %d of %d rows", n, len(rows))
	}

	swap := []string{
		`DROP TABLE IF EXISTS ` + target.Sanitize(),
		`ALTER TABLE ` + staging.Sanitize() + ` RENAME TO ` + target.Sanitize(),
		`CREATE INDEX ON ` + target.Sanitize() + ` (designator)`,
		`CREATE INDEX ON ` + target.Sanitize() + ` (lower(council_member))`,
	}
	for _, stmt := range swap {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("replacing %s: %w", table, err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO `+runs.Sanitize()+` (run_id, started_at, finished_at, input_dir, documents, skipped, items, rows, duplicates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.RunID, m.StartedAt, m.FinishedAt, m.InputDir, m.Documents, m.Skipped, m.Items, m.Rows, m.Duplicates,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

// copyValues renders r in pgColumns order.
func copyValues(r types.OutputRow, m Manifest) []any {
	var page any
	if r.Page > 0 {
		page = int32(r.Page)
	}
	return []any{
		r.Designator, r.Proposer, r.Action, r.Brief, r.Annotation, r.Mover, r.Seconder,
		string(r.Outcome), r.CouncilMember, string(r.Vote), r.MeetingDate, r.Source,
		page, int32(r.ItemIndex), m.RunID,
	}
}
