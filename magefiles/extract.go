// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and extracts minutes/ into output/council_votes.csv.
func Extract() error {
	mg.Deps(Init, Build)
	if err := sh.RunV(binPath(), "extract", "--input", "minutes", "--output", "output/council_votes.csv"); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return nil
}

// Dataset builds the SQLite dataset used by the lookup command.
func Dataset() error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath(), "extract", "--input", "minutes", "--format", "sqlite", "--output", "output/council_votes.db")
}
