// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus drives extraction over a directory of meeting documents.
// Documents are loaded and parsed independently on a bounded worker pool;
// the resulting rows are concatenated in file order, cleaned, and
// deduplicated once every document has been parsed.
package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/council-votes/internal/minutes"
	"github.com/pdiddy/council-votes/pkg/types"
)

// Result holds the dataset and counts from one corpus run.
type Result struct {
	Documents  int
	Skipped    int
	Items      int
	Duplicates int
	Rows       []types.OutputRow
}

// Total returns the number of directory entries considered.
func (r Result) Total() int {
	return r.Documents + r.Skipped
}

// docResult is the slot each worker fills for its document.
type docResult struct {
	items int
	rows  []types.OutputRow
}

// Run loads every supported document in cfg.InputDir, parses it with g, and
// returns the cleaned, deduplicated rows. Progress lines go to w. An
// unreadable or undecodable document aborts the run.
func Run(ctx context.Context, g *minutes.Grammar, cfg types.CorpusConfig, w io.Writer) (Result, error) {
	paths, skipped, err := listDocuments(cfg.InputDir)
	if err != nil {
		return Result{}, err
	}
	for _, name := range skipped {
		fmt.Fprintf(w, "skipped %s (unsupported)\n", name)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	slots := make([]docResult, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := Load(path)
			if err != nil {
				return err
			}
			items := g.ParseDocument(doc)
			slots[i] = docResult{items: len(items), rows: minutes.Rows(doc, items)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Documents: len(paths), Skipped: len(skipped)}
	var rows []types.OutputRow
	for i, slot := range slots {
		fmt.Fprintf(w, "parsed  %s (%d items, %d rows)\n", filepath.Base(paths[i]), slot.items, len(slot.rows))
		res.Items += slot.items
		rows = append(rows, slot.rows...)
	}

	res.Rows, res.Duplicates = Dedup(Clean(rows))
	return res, nil
}

// listDocuments returns the supported files in dir sorted by name, plus the
// names of regular files that were passed over.
func listDocuments(dir string) ([]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var paths, skipped []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !Supported(e.Name()) {
			skipped = append(skipped, e.Name())
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, skipped, nil
}
