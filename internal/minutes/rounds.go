// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"strings"

	"github.com/pdiddy/council-votes/pkg/types"
)

// ParseRounds reads the voting rounds of the item headed by h in span. A
// calendar item yields one round per MOVED BY:, a generic item at most one.
// It returns nil when span holds no recognizable header.
func (g *Grammar) ParseRounds(span Span, h types.ItemHeader) []types.VotingRound {
	found, ok := g.parseHeader(span.Text)
	if !ok {
		return nil
	}
	return parseRounds(span, h.Kind, found.end)
}

// parseItem parses the header and voting rounds of span and returns the
// offset of the header within the span.
func (g *Grammar) parseItem(span Span) (types.ParsedItem, int, bool) {
	h, ok := g.parseHeader(span.Text)
	if !ok {
		return types.ParsedItem{}, 0, false
	}
	item := types.ParsedItem{
		Header: h.ItemHeader,
		Rounds: parseRounds(span, h.Kind, h.end),
	}
	return item, h.start, true
}

// parseRounds reads the voting rounds that follow the header ending at from.
// Every MOVED BY: opens a round of a calendar item; a generic item has a
// single round running from its first MOVED BY: to the end of the span.
// Rounds without a recognized tally line are dropped.
func parseRounds(span Span, kind types.ItemKind, from int) []types.VotingRound {
	text := span.Text

	var starts []int
	for _, loc := range movedByRe.FindAllStringIndex(text[from:], -1) {
		starts = append(starts, from+loc[0])
	}

	var regions [][2]int
	switch {
	case len(starts) == 0:
		regions = append(regions, [2]int{from, len(text)})
	case kind == types.KindCalendar:
		for i, s := range starts {
			end := len(text)
			if i+1 < len(starts) {
				end = starts[i+1]
			}
			regions = append(regions, [2]int{s, end})
		}
	default:
		regions = append(regions, [2]int{starts[0], len(text)})
	}

	var rounds []types.VotingRound
	for _, r := range regions {
		round, tallies := parseRound(text[r[0]:r[1]])
		if tallies == 0 {
			continue
		}
		if round.Outcome == types.OutcomeUnknown && kind == types.KindGeneric && span.Terminator != "" {
			round.Outcome = span.Terminator
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// parseRound reads mover, seconder, tally lines, and outcome from one round
// region. It returns the number of recognized tally lines.
func parseRound(region string) (types.VotingRound, int) {
	round := types.VotingRound{Outcome: types.OutcomeUnknown}

	pos := 0
	if m := movedByRe.FindStringSubmatchIndex(region); m != nil {
		round.Mover = collapseSpace(region[m[2]:m[3]])
		pos = m[1]
	}
	if m := secondedByRe.FindStringSubmatchIndex(region[pos:]); m != nil {
		round.Seconder = collapseSpace(region[pos+m[2] : pos+m[3]])
		pos += m[1]
	}

	body := region[pos:]
	if loc := outcomeRe.FindStringIndex(body); loc != nil {
		round.Outcome = markerOutcome(body[loc[0]:loc[1]])
		body = body[:loc[0]]
	}

	return round, readTallies(body, &round)
}

// readTallies assigns vote keywords to members. The member list of a tally
// is the line directly above its category label ("YEAS:"), extended upward
// only while the lines above end with a comma. Lines with an unrecognized
// category are ignored.
func readTallies(body string, round *types.VotingRound) int {
	var (
		buf     []string
		tallies int
	)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := tallyLabelRe.FindStringSubmatch(line)
		if m == nil || (m[1] != "" && !types.Vote(strings.ToLower(m[2])).Valid()) {
			if strings.Contains(line, ":") {
				buf = nil
			} else {
				buf = pushLine(buf, line)
			}
			continue
		}

		if m[1] != "" {
			buf = pushLine(buf, m[1])
		}
		members := splitMembers(strings.Join(buf, " "))
		buf = nil

		if _, ok := NormalizeVote(m[2]); !ok {
			continue
		}
		tallies++
		for _, member := range members {
			round.SetVote(member, m[2])
		}
	}
	return tallies
}

// pushLine adds line to the pending member list. The line continues the list
// when the list so far ends with a comma and replaces it otherwise.
func pushLine(buf []string, line string) []string {
	if n := len(buf); n > 0 && strings.HasSuffix(buf[n-1], ",") {
		return append(buf, line)
	}
	return []string{line}
}
