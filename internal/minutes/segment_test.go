// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/council-votes/pkg/types"
)

func TestNormalize(t *testing.T) {
	g := DefaultGrammar()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "crlf and trailing blanks",
			in:   "MOVED BY:  \r\nKING\t\r\n",
			want: "MOVED BY:\nKING\n",
		},
		{
			name: "viewer links removed",
			in:   "CAL. NO. 34,462 https://cityofno.granicus.com/MinutesViewer.php?view_id=42&clip_id=7\nBrief:",
			want: "CAL. NO. 34,462\nBrief:",
		},
		{
			name: "compatibility forms folded",
			in:   "ﬁnal vote",
			want: "final vote",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, g.Normalize(got))
		})
	}
}

func TestSegmentRetainsTerminators(t *testing.T) {
	g := DefaultGrammar()
	text := "A\nAND THE MOTION PASSED.\nB\nAND THE MOTION FAILED.\nC\nWITHDRAWN.\ntrailing"

	spans := g.Segment(text)
	require.Len(t, spans, 4)

	assert.Equal(t, "A\nAND THE MOTION PASSED.\n", spans[0].Text)
	assert.Equal(t, types.OutcomePassed, spans[0].Terminator)
	assert.Equal(t, types.OutcomeFailed, spans[1].Terminator)
	assert.Equal(t, types.OutcomeWithdrawn, spans[2].Terminator)
	assert.Equal(t, types.Outcome(""), spans[3].Terminator)

	var b strings.Builder
	for _, s := range spans {
		assert.Equal(t, text[s.Start:s.Start+len(s.Text)], s.Text)
		b.WriteString(s.Text)
	}
	assert.Equal(t, text, b.String())
}

func TestSegmentMarkerAtEndOfText(t *testing.T) {
	spans := DefaultGrammar().Segment("X\nWITHDRAWN.")
	require.Len(t, spans, 1)
	assert.Equal(t, types.OutcomeWithdrawn, spans[0].Terminator)
}

func TestSegmentCalendarDocument(t *testing.T) {
	g := DefaultGrammar()
	tests := []struct {
		name     string
		text     string
		prefixes []string
		kinds    []types.ItemKind
	}{
		{
			name: "calendar then motion token",
			text: "ROLL CALL\n" + calendarFixture +
				"MOTION - NO. M-23-9 - BY: COUNCILMEMBER KING\nMOVED BY:\nKING\nKING\nYEAS:\nAND THE MOTION PASSED.\n",
			prefixes: []string{"ROLL CALL", "CAL. NO. 34,462", "MOTION - NO. M-23-9"},
			kinds:    []types.ItemKind{types.KindGeneric, types.KindCalendar, types.KindGeneric},
		},
		{
			name: "generic items before the first calendar item",
			text: "MOTION NO. M-23-1 - BY: COUNCILMEMBER KING\nAND THE MOTION PASSED.\n" +
				"MOTION NO. M-23-2 - BY: COUNCILMEMBER GREENE\nAND THE MOTION FAILED.\n" +
				calendarFixture,
			prefixes: []string{"MOTION NO. M-23-1", "MOTION NO. M-23-2", "CAL. NO. 34,462"},
			kinds:    []types.ItemKind{types.KindGeneric, types.KindGeneric, types.KindCalendar},
		},
		{
			name:     "amendment after a calendar item",
			text:     calendarFixture + amendmentFixture,
			prefixes: []string{"CAL. NO. 34,462", "AMENDMENT TO ORDINANCE 34,470"},
			kinds:    []types.ItemKind{types.KindCalendar, types.KindGeneric},
		},
		{
			name:     "enumerated calendar headers",
			text:     "51a. CAL. NO. 34,461\nWITHDRAWN.\n51b. CAL. NO. 34,462 - BY: COUNCILMEMBER HARRIS\nWITHDRAWN.\n",
			prefixes: []string{"51a. CAL. NO. 34,461", "51b. CAL. NO. 34,462"},
			kinds:    []types.ItemKind{types.KindCalendar, types.KindCalendar},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := g.Segment(tt.text)
			require.Len(t, spans, len(tt.prefixes))
			for i, s := range spans {
				assert.True(t, strings.HasPrefix(s.Text, tt.prefixes[i]), s.Text)
				assert.Equal(t, tt.kinds[i], s.Kind, tt.prefixes[i])
				assert.Equal(t, tt.text[s.Start:s.Start+len(s.Text)], s.Text)
			}
		})
	}
}

func TestSegmentCalendarReferenceInText(t *testing.T) {
	g := DefaultGrammar()
	for _, text := range []string{
		referenceFixture,
		strings.Replace(referenceFixture, "on CAL.", "on\nCAL.", 1),
	} {
		assert.False(t, IsCalendarDocument(text), text)
		spans := g.Segment(text)
		require.Len(t, spans, 1, text)
		assert.Equal(t, types.OutcomePassed, spans[0].Terminator)
	}
	assert.True(t, IsCalendarDocument("ROLL CALL\n  12. CAL. NO. 34,100\n"))
}

func TestParseHeader(t *testing.T) {
	g := DefaultGrammar()
	tests := []struct {
		name string
		text string
		want types.ItemHeader
		ok   bool
	}{
		{
			name: "generic motion",
			text: "MOTION NO. M-23-145 - BY: COUNCILMEMBER MORENO\n",
			want: types.ItemHeader{Kind: types.KindGeneric, Designator: "MOTION M-23-145", Proposer: "COUNCILMEMBER MORENO"},
			ok:   true,
		},
		{
			name: "amendment to ordinance",
			text: "AMENDMENT TO ORDINANCE 34,461 - BY: COUNCILMEMBER GIARRUSSO\n",
			want: types.ItemHeader{Kind: types.KindGeneric, Designator: "AMENDMENT TO ORDINANCE 34,461", Proposer: "COUNCILMEMBER GIARRUSSO"},
			ok:   true,
		},
		{
			name: "calendar with wrapped proposer and by request",
			text: "CAL. NO. 34,462 - BY: COUNCILMEMBERS HARRIS AND\nKING (BY REQUEST)\nBrief:\nAn ordinance.\nAnnotation:\nElectronically submitted.\n",
			want: types.ItemHeader{
				Kind: types.KindCalendar, Designator: "CAL. NO. 34,462",
				Proposer: "COUNCILMEMBERS HARRIS AND KING", Brief: "An ordinance.",
				Annotation: "Electronically submitted.",
			},
			ok: true,
		},
		{
			name: "calendar without proposer",
			text: "CAL. NO. 33,990\nAn ordinance to amend the code.\n",
			want: types.ItemHeader{Kind: types.KindCalendar, Designator: "CAL. NO. 33,990"},
			ok:   true,
		},
		{
			name: "calendar proposer stops at sentence text",
			text: "CAL. NO. 34,100 - BY: COUNCILMEMBER KING\nAn ordinance to amend.\n",
			want: types.ItemHeader{Kind: types.KindCalendar, Designator: "CAL. NO. 34,100", Proposer: "COUNCILMEMBER KING"},
			ok:   true,
		},
		{
			name: "calendar wins over embedded motion",
			text: "CAL. NO. 34,462 - BY: COUNCILMEMBER HARRIS\nMOTION NO. M-23-1 - BY: COUNCILMEMBER KING\n",
			want: types.ItemHeader{Kind: types.KindCalendar, Designator: "CAL. NO. 34,462", Proposer: "COUNCILMEMBER HARRIS"},
			ok:   true,
		},
		{
			name: "calendar reference in a motion brief",
			text: "MOTION NO. M-23-9 - BY: COUNCILMEMBER KING\nBrief:\nRequests a report on\nCAL. NO. 34,100 - BY: COUNCILMEMBER HARRIS\n",
			want: types.ItemHeader{
				Kind: types.KindGeneric, Designator: "MOTION M-23-9", Proposer: "COUNCILMEMBER KING",
				Brief: "Requests a report on\nCAL. NO. 34,100 - BY: COUNCILMEMBER HARRIS",
			},
			ok: true,
		},
		{
			name: "action keyword",
			text: "MOTION NO. M-23-2 - BY: COUNCILMEMBER KING\nACTION:\nEnter Executive Session\nMOVED BY:\nKING\n",
			want: types.ItemHeader{Kind: types.KindGeneric, Designator: "MOTION M-23-2", Proposer: "COUNCILMEMBER KING", Action: "Enter Executive Session"},
			ok:   true,
		},
		{
			name: "unknown action ignored",
			text: "MOTION NO. M-23-3 - BY: COUNCILMEMBER KING\nACTION:\nReceive\n",
			want: types.ItemHeader{Kind: types.KindGeneric, Designator: "MOTION M-23-3", Proposer: "COUNCILMEMBER KING"},
			ok:   true,
		},
		{
			name: "no header",
			text: "PUBLIC COMMENT\nSpeakers addressed the council.\n",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.ParseHeader(Span{Text: tt.text})
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGrammarConfig(t *testing.T) {
	_, err := NewGrammar(types.ExtractionConfig{StripPatterns: []string{"("}})
	assert.Error(t, err)

	g, err := NewGrammar(types.ExtractionConfig{
		StripPatterns:  []string{`\[page \d+\]`},
		ActionKeywords: []string{"Receive"},
	})
	require.NoError(t, err)
	assert.Equal(t, "A\nB", g.Normalize("A[page 3]\nB"))

	h, ok := g.ParseHeader(Span{Text: "MOTION NO. M-1 - BY: KING\nACTION:\nReceive\n"})
	require.True(t, ok)
	assert.Equal(t, "Receive", h.Action)
}

func TestNormalizeMember(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "  MORENO \n", want: "MORENO", ok: true},
		{in: "GIARRUSSO\nIII", want: "GIARRUSSO III", ok: true},
		{in: "0", ok: false},
		{in: " \n ", ok: false},
	}
	for _, tt := range tests {
		got, ok := NormalizeMember(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		if ok {
			again, _ := NormalizeMember(got)
			assert.Equal(t, got, again)
		}
	}
}

func TestNormalizeVote(t *testing.T) {
	for _, kw := range []string{"YEAS", "nays", " Abstain ", "ABSENT", "RECUSED"} {
		v, ok := NormalizeVote(kw)
		assert.True(t, ok, kw)
		again, _ := NormalizeVote(string(v))
		assert.Equal(t, v, again)
	}
	_, ok := NormalizeVote("EXCUSED")
	assert.False(t, ok)
}
