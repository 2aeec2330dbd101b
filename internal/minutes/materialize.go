// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import "github.com/pdiddy/council-votes/pkg/types"

// Materialize expands a parsed item into one output row per vote record of
// each round. Rounds without records contribute nothing.
func Materialize(doc types.Document, index int, item types.ParsedItem) []types.OutputRow {
	var rows []types.OutputRow
	for _, round := range item.Rounds {
		for _, rec := range round.Records() {
			row := baseRow(doc, index, item)
			row.Mover = round.Mover
			row.Seconder = round.Seconder
			row.Outcome = round.Outcome
			row.CouncilMember = rec.Member
			row.Vote = rec.Vote
			rows = append(rows, row)
		}
	}
	return rows
}

// SentinelRow is the single row emitted for an item that yielded no vote
// records: null member, vote "not available". Round fields come from the
// first round when there is one.
func SentinelRow(doc types.Document, index int, item types.ParsedItem) types.OutputRow {
	row := baseRow(doc, index, item)
	row.Outcome = types.OutcomeUnknown
	if len(item.Rounds) > 0 {
		row.Mover = item.Rounds[0].Mover
		row.Seconder = item.Rounds[0].Seconder
		row.Outcome = item.Rounds[0].Outcome
	}
	rec := types.SentinelRecord()
	row.CouncilMember = rec.Member
	row.Vote = rec.Vote
	return row
}

func baseRow(doc types.Document, index int, item types.ParsedItem) types.OutputRow {
	row := types.OutputRow{
		Designator: item.Header.Designator,
		Proposer:   item.Header.Proposer,
		Action:     item.Header.Action,
		Brief:      item.Header.Brief,
		Annotation: item.Header.Annotation,
		Source:     doc.Source,
		Page:       item.Page,
		ItemIndex:  index,
	}
	if d := doc.DateString(); d != "" {
		row.MeetingDate = &d
	}
	return row
}
