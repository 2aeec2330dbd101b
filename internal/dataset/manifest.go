// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/council-votes/pkg/types"
)

// Manifest records one extraction run.
type Manifest struct {
	RunID      uuid.UUID          `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time          `json:"finished_at" yaml:"finished_at"`
	InputDir   string             `json:"input_dir" yaml:"input_dir"`
	Format     types.OutputFormat `json:"format" yaml:"format"`
	Documents  int                `json:"documents" yaml:"documents"`
	Skipped    int                `json:"skipped" yaml:"skipped"`
	Items      int                `json:"items" yaml:"items"`
	Rows       int                `json:"rows" yaml:"rows"`
	Duplicates int                `json:"duplicates" yaml:"duplicates"`
}

// NewManifest starts a manifest with a fresh run ID.
func NewManifest(inputDir string, format types.OutputFormat, started time.Time) Manifest {
	return Manifest{
		RunID:     uuid.New(),
		StartedAt: started.UTC(),
		InputDir:  inputDir,
		Format:    format,
	}
}

// ManifestPath returns where the manifest for output is written.
func ManifestPath(output string) string {
	return output + ".manifest.yaml"
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m Manifest) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("marshaling manifest: %w", err)
		}
		return enc.Close()
	})
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
