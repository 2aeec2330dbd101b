// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"sort"
	"strings"

	"github.com/pdiddy/council-votes/pkg/types"
)

// Span is a contiguous piece of a document believed to hold one agenda item.
type Span struct {
	// Text is the raw span text, terminal marker included.
	Text string

	// Start is the byte offset of the span within the normalized document.
	Start int

	// Kind is the segmenter's guess: calendar for spans opened by a
	// calendar header, generic otherwise.
	Kind types.ItemKind

	// Terminator is the outcome of the marker that closed the span, or ""
	// when the span ends without one.
	Terminator types.Outcome
}

// IsCalendarDocument reports whether text uses calendar-style item headers,
// that is whether any line opens with a "CAL. NO." header.
func IsCalendarDocument(text string) bool {
	return calendarHeaderRe.MatchString(text)
}

// Segment partitions normalized text into item spans. Generic documents are
// cut after every terminal marker, and the marker stays with the span it
// terminates. Calendar-style documents are cut in front of every header
// line instead, calendar or generic, so that one span can hold several
// voting rounds of its own item and no other. Whitespace-only spans are
// dropped.
func (g *Grammar) Segment(text string) []Span {
	if IsCalendarDocument(text) {
		return segmentAtHeaders(text)
	}
	return segmentAtTerminators(text)
}

func segmentAtTerminators(text string) []Span {
	var spans []Span
	prev := 0
	for _, m := range terminatorRe.FindAllStringSubmatchIndex(text, -1) {
		spans = appendSpan(spans, text, prev, m[1], types.KindGeneric, markerOutcome(text[m[2]:m[3]]))
		prev = m[1]
	}
	return appendSpan(spans, text, prev, len(text), types.KindGeneric, "")
}

// boundary is the start of a header line.
type boundary struct {
	at   int
	kind types.ItemKind
}

func headerBoundaries(text string) []boundary {
	var bounds []boundary
	for _, loc := range calendarHeaderRe.FindAllStringIndex(text, -1) {
		bounds = append(bounds, boundary{at: loc[0], kind: types.KindCalendar})
	}
	for _, loc := range genericStartRe.FindAllStringIndex(text, -1) {
		bounds = append(bounds, boundary{at: loc[0], kind: types.KindGeneric})
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].at < bounds[j].at })
	return bounds
}

func segmentAtHeaders(text string) []Span {
	bounds := headerBoundaries(text)
	if len(bounds) == 0 {
		return appendSpan(nil, text, 0, len(text), types.KindGeneric, firstTerminator(text))
	}

	lead := text[:bounds[0].at]
	spans := appendSpan(nil, text, 0, len(lead), types.KindGeneric, firstTerminator(lead))
	for i, b := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1].at
		}
		spans = appendSpan(spans, text, b.at, end, b.kind, firstTerminator(text[b.at:end]))
	}
	return spans
}

func appendSpan(spans []Span, text string, start, end int, kind types.ItemKind, term types.Outcome) []Span {
	if start >= end || strings.TrimSpace(text[start:end]) == "" {
		return spans
	}
	return append(spans, Span{Text: text[start:end], Start: start, Kind: kind, Terminator: term})
}

// firstTerminator returns the outcome of the first terminal marker in text.
func firstTerminator(text string) types.Outcome {
	m := terminatorRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return markerOutcome(m[1])
}

// markerOutcome maps a marker ("AND THE MOTION PASSED.", "WITHDRAWN") to
// its outcome.
func markerOutcome(marker string) types.Outcome {
	switch {
	case strings.Contains(marker, "PASSED"):
		return types.OutcomePassed
	case strings.Contains(marker, "FAILED"):
		return types.OutcomeFailed
	case strings.Contains(marker, "WITHDRAWN"):
		return types.OutcomeWithdrawn
	}
	return types.OutcomeUnknown
}
