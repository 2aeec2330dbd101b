// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/council-votes/internal/corpus"
	"github.com/pdiddy/council-votes/internal/minutes"
	"github.com/pdiddy/council-votes/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-extract whenever the minutes directory changes",
	Long: `Watch runs extract once, then watches the input directory and runs it
again after new or changed documents settle for the debounce period. Each
run writes a complete, fresh dataset. A failed run is reported and
watching continues. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	g, err := minutes.NewGrammar(cfg.Extraction)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context) error {
		_, err := runPipeline(ctx, g, cfg, os.Stdout)
		return err
	}
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stdout, "failed  initial run: %v\n", err)
	}

	fmt.Fprintf(os.Stdout, "watching %s\n", cfg.Corpus.InputDir)
	w := watch.New(cfg.Corpus.InputDir, cfg.Watch.Debounce, run,
		watch.WithFilter(corpus.Supported),
		watch.WithOutput(os.Stdout))
	return w.Run(ctx)
}

func init() {
	addPipelineFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period after the last change before re-running")
	rootCmd.AddCommand(watchCmd)
}
