// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package minutes extracts voted agenda items from council meeting minutes.
// Text is normalized, segmented into candidate item spans, and each span is
// matched against the generic-motion and calendar-item header grammars;
// voting rounds are then read from the span and materialized as flat rows.
//
// All patterns live in an immutable Grammar compiled once at startup. A
// Grammar holds no per-document state and is safe for concurrent use.
package minutes

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/council-votes/pkg/types"
)

// DefaultStripPatterns removes links to the city's minutes viewer, which
// OCR output interleaves with item headers and briefs.
var DefaultStripPatterns = []string{
	`https://cityofno\.granicus\.com/MinutesViewer[^\s]*`,
}

// DefaultActionKeywords is the accepted ACTION: vocabulary.
var DefaultActionKeywords = []string{
	"Amendment",
	"As Amended",
	"Adopt",
	"Enter Executive Session",
}

// itemPrefix anchors a header to the start of a line, allowing an agenda
// enumeration such as "51a. " in front of it.
const itemPrefix = `(?m)^[ \t]*(?:\d+[a-z]?\.[ \t]*)?`

// Fixed patterns shared by every Grammar.
var (
	// terminatorRe matches an item's terminal marker followed by a newline
	// or the end of the text.
	terminatorRe = regexp.MustCompile(`(AND THE MOTION (PASSED|FAILED)\.|WITHDRAWN\.)[ \t]*(?:\n|$)`)

	// outcomeRe matches an outcome marker anywhere in a round.
	outcomeRe = regexp.MustCompile(`AND THE MOTION (PASSED|FAILED)|WITHDRAWN`)

	// genericHeaderRe matches "MOTION NO. M-23-145 - BY: COUNCILMEMBER MORENO".
	genericHeaderRe = regexp.MustCompile(`(AMENDMENT TO ORDINANCE|MOTION|RESOLUTION) ?-? ?(?:NO\. ?)?([A-Z0-9][A-Z0-9\-]*(?:,[A-Z0-9\-]+)*) - BY: ?([^\n]*)`)

	// genericStartRe matches a generic header, or a bare "MOTION - NO."
	// token, at the start of a line. It opens a span in calendar-style
	// documents.
	genericStartRe = regexp.MustCompile(itemPrefix + `(?:(?:MOTION|RESOLUTION) - NO\.|(?:AMENDMENT TO ORDINANCE|MOTION|RESOLUTION) ?-? ?(?:NO\. ?)?[A-Z0-9][A-Z0-9\-]*(?:,[A-Z0-9\-]+)* - BY:)`)

	// calendarHeaderRe matches "CAL. NO. 34,462 - BY: COUNCILMEMBER HARRIS"
	// at the start of a line. The BY clause is optional and may follow on
	// the next line when it starts with a hyphen. Without it the designator
	// must end the line, so "CAL. NO. 34,100 compliance" in running text is
	// a reference, not a header.
	calendarHeaderRe = regexp.MustCompile(itemPrefix + `CAL\. NO\.[ \t]*-?[ \t]*([0-9][0-9,]*(?:-[A-Z0-9]+)?)(?:(?:\s*-[ \t]*|[ \t]+)BY(?::|[ \t])[ \t]*([^\n]*)|[ \t]*(?:\([^\n]*)?)$`)

	byRequestRe = regexp.MustCompile(`\(\s*BY\s*REQUEST\s*\)`)

	briefRe      = regexp.MustCompile(`Brief:`)
	annotationRe = regexp.MustCompile(`Annotation:[ \t]*(?:\n[ \t]*)?([^\n]*)`)
	annotationAt = regexp.MustCompile(`Annotation:`)
	movedByRe    = regexp.MustCompile(`MOVED BY:[ \t]*(?:\n[ \t]*)?([^\n]*)`)
	secondedByRe = regexp.MustCompile(`SECONDED BY:[ \t]*(?:\n[ \t]*)?([^\n]*)`)

	// tallyLabelRe matches a vote-category label line such as "YEAS:",
	// optionally preceded on the same line by members.
	tallyLabelRe = regexp.MustCompile(`^(?:(.*\S)\s+)?([A-Z]+):$`)

	// tallyCountRe matches the " - 3" tally suffix of a member list.
	tallyCountRe = regexp.MustCompile(`\s*-\s*\d+\s*$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Grammar holds the compiled, configuration-dependent patterns.
type Grammar struct {
	strip    []*regexp.Regexp
	actionRe *regexp.Regexp
}

// DefaultGrammar returns a Grammar built from the default configuration.
func DefaultGrammar() *Grammar {
	g, err := NewGrammar(types.ExtractionConfig{})
	if err != nil {
		panic(err)
	}
	return g
}

// NewGrammar compiles the patterns named by cfg. Empty fields fall back to
// DefaultStripPatterns and DefaultActionKeywords.
func NewGrammar(cfg types.ExtractionConfig) (*Grammar, error) {
	strip := cfg.StripPatterns
	if len(strip) == 0 {
		strip = DefaultStripPatterns
	}
	actions := cfg.ActionKeywords
	if len(actions) == 0 {
		actions = DefaultActionKeywords
	}

	g := &Grammar{}
	for _, p := range strip {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling strip pattern %q: %w", p, err)
		}
		g.strip = append(g.strip, re)
	}

	// Longest keyword first so that no keyword shadows a longer one
	// sharing its prefix.
	sorted := append([]string(nil), actions...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, 0, len(sorted))
	for _, a := range sorted {
		if a = strings.TrimSpace(a); a != "" {
			quoted = append(quoted, regexp.QuoteMeta(a))
		}
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("no action keywords configured")
	}
	g.actionRe = regexp.MustCompile(`ACTION:[ \t]*(?:\n[ \t]*)?(` + strings.Join(quoted, "|") + `)`)

	return g, nil
}
