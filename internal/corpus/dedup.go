// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/council-votes/pkg/types"
)

// Clean trims and collapses whitespace in the text fields of every row.
func Clean(rows []types.OutputRow) []types.OutputRow {
	out := make([]types.OutputRow, len(rows))
	for i, r := range rows {
		r.Designator = collapse(r.Designator)
		r.Proposer = collapse(r.Proposer)
		r.Action = collapse(r.Action)
		r.Brief = collapse(r.Brief)
		r.Annotation = collapse(r.Annotation)
		r.Mover = collapse(r.Mover)
		r.Seconder = collapse(r.Seconder)
		if r.CouncilMember != nil {
			m := collapse(*r.CouncilMember)
			r.CouncilMember = &m
		}
		out[i] = r
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// instance identifies one parsed item within the concatenated rows.
type instance struct {
	source string
	index  int
}

type group struct {
	designator string
	brief      int
	rows       []types.OutputRow
}

// Dedup keeps one item instance per designator. A later instance replaces
// the kept one only when its brief is strictly longer; ties keep the first.
// It returns the surviving rows in their original order and the number of
// item instances removed.
func Dedup(rows []types.OutputRow) ([]types.OutputRow, int) {
	var groups []*group
	byInstance := make(map[instance]*group)
	for _, r := range rows {
		k := instance{source: r.Source, index: r.ItemIndex}
		g, ok := byInstance[k]
		if !ok {
			g = &group{
				designator: r.Designator,
				brief:      utf8.RuneCountInString(strings.TrimSpace(r.Brief)),
			}
			byInstance[k] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}

	winner := make(map[string]*group)
	for _, g := range groups {
		cur, ok := winner[g.designator]
		if !ok || g.brief > cur.brief {
			winner[g.designator] = g
		}
	}

	kept := make([]types.OutputRow, 0, len(rows))
	removed := 0
	for _, g := range groups {
		if winner[g.designator] != g {
			removed++
			continue
		}
		kept = append(kept, g.rows...)
	}
	return kept, removed
}
