// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"strings"
	"unicode"

	"github.com/pdiddy/council-votes/pkg/types"
)

// maxProposerLines bounds how many lines a calendar proposer may wrap onto.
const maxProposerLines = 2

// header is a recognized item header and its byte range within the span.
type header struct {
	types.ItemHeader
	start, end int
}

// headerGrammar recognizes one variant of item header.
type headerGrammar struct {
	kind  types.ItemKind
	match func(text string) (header, bool)
}

// headerGrammars are tried in order. The grammar matching earliest in the
// span claims it, ties going to the first, so a span yields one header.
var headerGrammars = []headerGrammar{
	{kind: types.KindCalendar, match: matchCalendar},
	{kind: types.KindGeneric, match: matchGeneric},
}

// ParseHeader recognizes the identity of the item in span. A span matching
// neither grammar yields false; most minutes text is narrative and this is
// not an error.
func (g *Grammar) ParseHeader(span Span) (types.ItemHeader, bool) {
	h, ok := g.parseHeader(span.Text)
	return h.ItemHeader, ok
}

func (g *Grammar) parseHeader(text string) (header, bool) {
	var (
		best  header
		found bool
	)
	for _, hg := range headerGrammars {
		h, ok := hg.match(text)
		if !ok || (found && h.start >= best.start) {
			continue
		}
		h.Kind = hg.kind
		best, found = h, true
	}
	if !found {
		return header{}, false
	}
	g.parseFields(text, &best)
	return best, true
}

// matchGeneric recognizes "{AMENDMENT TO ORDINANCE|MOTION|RESOLUTION} [NO.]
// <designator> - BY: <proposer>". When the span holds several such headers
// the last one before the first MOVED BY: names the item being voted on.
func matchGeneric(text string) (header, bool) {
	matches := genericHeaderRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return header{}, false
	}

	m := matches[len(matches)-1]
	if loc := movedByRe.FindStringIndex(text); loc != nil {
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i][0] < loc[0] {
				m = matches[i]
				break
			}
		}
	}

	h := header{start: m[0], end: m[1]}
	h.Designator = text[m[2]:m[3]] + " " + text[m[4]:m[5]]
	h.Proposer = cleanProposer(text[m[6]:m[7]])
	return h, true
}

// matchCalendar recognizes "CAL. NO. <designator>[- BY: <proposer>][(BY
// REQUEST)]". The proposer may wrap onto following upper-case lines.
func matchCalendar(text string) (header, bool) {
	m := calendarHeaderRe.FindStringSubmatchIndex(text)
	if m == nil {
		return header{}, false
	}

	h := header{start: m[0], end: m[1]}
	h.Designator = "CAL. NO. " + strings.TrimRight(text[m[2]:m[3]], ",")

	if m[4] < 0 {
		return h, true
	}

	parts := []string{text[m[4]:m[5]]}
	rest := text[m[1]:]
	for n := 0; n < maxProposerLines && strings.HasPrefix(rest, "\n"); n++ {
		line, _, _ := strings.Cut(rest[1:], "\n")
		if !isProposerContinuation(line) {
			break
		}
		parts = append(parts, line)
		h.end += 1 + len(line)
		rest = rest[1+len(line):]
	}
	h.Proposer = cleanProposer(strings.Join(parts, " "))
	return h, true
}

// isProposerContinuation reports whether line continues a wrapped list of
// sponsor names rather than starting a field or the item text.
func isProposerContinuation(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.Contains(line, ":") {
		return false
	}
	if calendarHeaderRe.MatchString(line) || genericStartRe.MatchString(line) || outcomeRe.MatchString(line) {
		return false
	}
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// cleanProposer strips line breaks and the "(BY REQUEST)" marker.
func cleanProposer(s string) string {
	s = byRequestRe.ReplaceAllString(s, " ")
	s = collapseSpace(s)
	return strings.TrimRight(s, " -,")
}

// parseFields fills the optional ACTION:, Brief:, and Annotation: fields.
// They are read between the header and the first MOVED BY: so that text of
// the voting rounds is never mistaken for a header field.
func (g *Grammar) parseFields(text string, h *header) {
	region := text[h.end:]
	if loc := movedByRe.FindStringIndex(region); loc != nil {
		region = region[:loc[0]]
	}

	if m := g.actionRe.FindStringSubmatch(region); m != nil {
		h.Action = m[1]
	}

	if loc := briefRe.FindStringIndex(region); loc != nil {
		body := region[loc[1]:]
		if end := annotationAt.FindStringIndex(body); end != nil {
			body = body[:end[0]]
		}
		h.Brief = strings.TrimSpace(body)
	}

	if m := annotationRe.FindStringSubmatch(region); m != nil {
		h.Annotation = strings.TrimSpace(m[1])
	}
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
