// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ExtractionConfig holds the pattern configuration compiled into a Grammar.
type ExtractionConfig struct {
	// StripPatterns are regular expressions removed from the text before
	// parsing (minutes-viewer links and similar boilerplate).
	StripPatterns []string `json:"strip_patterns" yaml:"strip_patterns" mapstructure:"strip_patterns"`

	// ActionKeywords is the accepted set of values for the ACTION: field.
	ActionKeywords []string `json:"action_keywords" yaml:"action_keywords" mapstructure:"action_keywords"`
}

// CorpusConfig holds settings for the corpus driver.
type CorpusConfig struct {
	// InputDir is the directory of per-meeting source documents.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir" validate:"required"`

	// Workers bounds the number of documents parsed concurrently. Zero uses
	// GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"gte=0,lte=256"`
}

// OutputFormat selects the dataset writer.
type OutputFormat string

const (
	FormatCSV      OutputFormat = "csv"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
	FormatSQLite   OutputFormat = "sqlite"
	FormatPostgres OutputFormat = "postgres"
)

// OutputConfig holds settings for the dataset writer.
type OutputConfig struct {
	// Format selects the writer: csv, json, yaml, sqlite, or postgres.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=csv json yaml sqlite postgres"`

	// Path is the output file for file-based formats.
	Path string `json:"path" yaml:"path" mapstructure:"path" validate:"required_unless=Format postgres"`

	// PostgresDSN is the connection string for the postgres format.
	PostgresDSN string `json:"postgres_dsn,omitempty" yaml:"postgres_dsn,omitempty" mapstructure:"postgres_dsn" validate:"required_if=Format postgres"`

	// PostgresTable is the target table for the postgres format (default "council_votes").
	PostgresTable string `json:"postgres_table,omitempty" yaml:"postgres_table,omitempty" mapstructure:"postgres_table"`

	// Manifest controls whether a run manifest is written next to file outputs.
	Manifest bool `json:"manifest" yaml:"manifest" mapstructure:"manifest"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last file event before a re-run.
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce" validate:"gte=0"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
	Watch      WatchConfig      `json:"watch" yaml:"watch" mapstructure:"watch"`
}

var validate = validator.New()

// Validate checks the configuration for missing or out-of-range values.
func (c PipelineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
