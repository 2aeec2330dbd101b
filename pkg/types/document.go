// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the council-votes pipeline:
// source documents, parsed agenda items, voting rounds, and the flat output
// rows consumed downstream.
package types

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the layout used to render meeting dates in output rows.
const DateLayout = "2006-01-02"

// Page is one page of a paginated source document (e.g. OCR output).
type Page struct {
	// Number is the 1-based page number as recorded by the producer.
	Number int `json:"page_number" yaml:"page_number"`

	// Text is the page content.
	Text string `json:"page_content" yaml:"page_content"`
}

// Document holds the full text of one meeting's minutes or agenda.
// Documents are immutable once loaded.
type Document struct {
	// Source is the base filename the document was read from.
	Source string `json:"source" yaml:"source"`

	// Date is the meeting date recovered from the filename. Nil when the
	// filename carries no date-shaped substring.
	Date *time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Text is the full document text. For paginated sources it is the pages
	// joined with a newline.
	Text string `json:"text" yaml:"text"`

	// Pages is set for paginated sources, in document order.
	Pages []Page `json:"pages,omitempty" yaml:"pages,omitempty"`

	// pageStarts holds the offset of each page within Text.
	pageStarts []int
}

// NewPaginatedDocument joins pages into a single text and remembers where
// each page begins so offsets can be mapped back to page numbers.
func NewPaginatedDocument(source string, date *time.Time, pages []Page) Document {
	doc := Document{Source: source, Date: date, Pages: pages}
	var b strings.Builder
	starts := make([]int, len(pages))
	for i, p := range pages {
		if i > 0 {
			b.WriteByte('\n')
		}
		starts[i] = b.Len()
		b.WriteString(p.Text)
	}
	doc.Text = b.String()
	doc.pageStarts = starts
	return doc
}

// PageAt returns the page number containing the byte offset in Text, or 0
// when the document is not paginated.
func (d Document) PageAt(offset int) int {
	if len(d.pageStarts) == 0 {
		return 0
	}
	i := sort.Search(len(d.pageStarts), func(i int) bool { return d.pageStarts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return d.Pages[i].Number
}

// DateString renders the meeting date as YYYY-MM-DD, or "" when unknown.
func (d Document) DateString() string {
	if d.Date == nil {
		return ""
	}
	return d.Date.Format(DateLayout)
}
