// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset persists the extracted vote rows. File formats (CSV,
// JSON, YAML, SQLite) are written to a temporary file and renamed into
// place; the Postgres sink replaces its table inside one transaction. A
// dataset is always written whole and never updated in place.
package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/council-votes/pkg/types"
)

// Write persists rows in cfg.Format. When cfg.Manifest is set, file formats
// also get a run manifest next to the output.
func Write(ctx context.Context, cfg types.OutputConfig, rows []types.OutputRow, m Manifest) error {
	var err error
	switch cfg.Format {
	case types.FormatCSV, "":
		err = writeAtomic(cfg.Path, func(w io.Writer) error { return EncodeCSV(w, rows) })
	case types.FormatJSON:
		err = writeAtomic(cfg.Path, func(w io.Writer) error { return encodeJSON(w, rows) })
	case types.FormatYAML:
		err = writeAtomic(cfg.Path, func(w io.Writer) error { return encodeYAML(w, rows) })
	case types.FormatSQLite:
		err = writeSQLite(ctx, cfg.Path, rows, m)
	case types.FormatPostgres:
		return writePostgres(ctx, cfg, rows, m)
	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
	if err != nil {
		return err
	}

	if cfg.Manifest {
		if err := WriteManifest(ManifestPath(cfg.Path), m); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCSV writes a header row followed by one record per row. Null
// members and dates are written as empty fields.
func EncodeCSV(w io.Writer, rows []types.OutputRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// record renders r in column order.
func record(r types.OutputRow) []string {
	page := ""
	if r.Page > 0 {
		page = strconv.Itoa(r.Page)
	}
	return []string{
		r.Designator, r.Proposer, r.Action, r.Brief, r.Annotation,
		r.Mover, r.Seconder, string(r.Outcome), r.Member(), string(r.Vote),
		r.Date(), r.Source, page,
	}
}

func encodeJSON(w io.Writer, rows []types.OutputRow) error {
	if rows == nil {
		rows = []types.OutputRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, rows []types.OutputRow) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// writeAtomic writes path through a temporary file in the same directory so
// that readers never observe a partial dataset.
func writeAtomic(path string, write func(w io.Writer) error) error {
	tmp, err := createTemp(path)
	if err != nil {
		return err
	}
	name := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return commit(name, path)
}

func createTemp(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	return tmp, nil
}

func commit(tmp, path string) error {
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("setting mode on %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}
