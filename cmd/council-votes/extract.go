// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/council-votes/internal/corpus"
	"github.com/pdiddy/council-votes/internal/dataset"
	"github.com/pdiddy/council-votes/internal/minutes"
	"github.com/pdiddy/council-votes/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract vote rows from a directory of minutes",
	Long: `Extract parses every supported document in the input directory
(.txt, .md, .json OCR output, .html), recognizes voted items and their
voting rounds, removes repeated items, and writes the dataset once.

The meeting date of each row comes from an M-D-YYYY date in the source
file name.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	g, err := minutes.NewGrammar(cfg.Extraction)
	if err != nil {
		return err
	}
	_, err = runPipeline(cmd.Context(), g, cfg, os.Stdout)
	return err
}

// runPipeline performs one full extraction run and writes the dataset.
func runPipeline(ctx context.Context, g *minutes.Grammar, cfg types.PipelineConfig, w io.Writer) (dataset.Manifest, error) {
	m := dataset.NewManifest(cfg.Corpus.InputDir, cfg.Output.Format, time.Now())

	res, err := corpus.Run(ctx, g, cfg.Corpus, w)
	if err != nil {
		return m, err
	}
	m.Documents = res.Documents
	m.Skipped = res.Skipped
	m.Items = res.Items
	m.Rows = len(res.Rows)
	m.Duplicates = res.Duplicates
	m.FinishedAt = time.Now().UTC()

	if err := dataset.Write(ctx, cfg.Output, res.Rows, m); err != nil {
		return m, err
	}

	fmt.Fprintf(w, "\ndocuments: %d, skipped: %d, items: %d, rows: %d, duplicates removed: %d\n",
		m.Documents, m.Skipped, m.Items, m.Rows, m.Duplicates)
	fmt.Fprintf(w, "wrote %s (run %s)\n", destination(cfg.Output), m.RunID)
	return m, nil
}

func destination(out types.OutputConfig) string {
	if out.Format == types.FormatPostgres {
		if out.PostgresTable != "" {
			return "postgres table " + out.PostgresTable
		}
		return "postgres"
	}
	return out.Path
}

func init() {
	addPipelineFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}
