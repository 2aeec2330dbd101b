// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/council-votes/internal/minutes"
	"github.com/pdiddy/council-votes/internal/secrets"
	"github.com/pdiddy/council-votes/internal/watch"
	"github.com/pdiddy/council-votes/pkg/types"
)

// flagKeys maps command flags to config keys.
var flagKeys = map[string]string{
	"input":          "corpus.input_dir",
	"workers":        "corpus.workers",
	"output":         "output.path",
	"format":         "output.format",
	"manifest":       "output.manifest",
	"postgres-table": "output.postgres_table",
	"debounce":       "watch.debounce",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus.input_dir", "minutes")
	v.SetDefault("corpus.workers", 0)
	v.SetDefault("extraction.strip_patterns", minutes.DefaultStripPatterns)
	v.SetDefault("extraction.action_keywords", minutes.DefaultActionKeywords)
	v.SetDefault("output.format", string(types.FormatCSV))
	v.SetDefault("output.path", "council_votes.csv")
	v.SetDefault("output.manifest", true)
	v.SetDefault("output.postgres_dsn", "")
	v.SetDefault("output.postgres_table", "council_votes")
	v.SetDefault("watch.debounce", watch.DefaultDebounce)
}

// addPipelineFlags registers the flags shared by extract and watch.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "minutes", "directory of meeting documents")
	cmd.Flags().StringP("output", "o", "council_votes.csv", "output dataset path")
	cmd.Flags().String("format", "csv", "output format: csv, json, yaml, sqlite, postgres")
	cmd.Flags().Int("workers", 0, "documents parsed concurrently (0 = GOMAXPROCS)")
	cmd.Flags().Bool("manifest", true, "write a run manifest next to file outputs")
	cmd.Flags().String("postgres-table", "council_votes", "target table for the postgres format")
}

// bindFlags attaches cmd's flags to their config keys. Binding happens per
// invocation because extract and watch declare the same flags.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig assembles and validates the pipeline configuration. The
// postgres DSN falls back to the postgres-dsn secret.
func loadConfig(v *viper.Viper, secretValues map[string]string) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.Output.PostgresDSN == "" {
		cfg.Output.PostgresDSN = secretValues[secrets.PostgresDSN]
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// commandConfig binds cmd's flags and loads the configuration.
func commandConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	if err := bindFlags(viper.GetViper(), cmd); err != nil {
		return types.PipelineConfig{}, err
	}
	return loadConfig(viper.GetViper(), loadedSecrets)
}
