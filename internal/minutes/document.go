// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import "github.com/pdiddy/council-votes/pkg/types"

// ParseDocument normalizes and segments one document and returns the items
// recognized in it, in document order. It reads nothing outside doc.
func (g *Grammar) ParseDocument(doc types.Document) []types.ParsedItem {
	doc = g.NormalizeDocument(doc)

	var items []types.ParsedItem
	for _, span := range g.Segment(doc.Text) {
		item, at, ok := g.parseItem(span)
		if !ok {
			continue
		}
		item.Page = doc.PageAt(span.Start + at)
		items = append(items, item)
	}
	return items
}

// NormalizeDocument returns a copy of doc with normalized text. Paginated
// documents are normalized page by page so that offsets still map to pages.
func (g *Grammar) NormalizeDocument(doc types.Document) types.Document {
	if len(doc.Pages) == 0 {
		doc.Text = g.Normalize(doc.Text)
		return doc
	}
	pages := make([]types.Page, len(doc.Pages))
	for i, p := range doc.Pages {
		pages[i] = types.Page{Number: p.Number, Text: g.Normalize(p.Text)}
	}
	return types.NewPaginatedDocument(doc.Source, doc.Date, pages)
}

// Rows materializes items. An item that yields no vote rows gets its
// sentinel row so that header-only items still appear in the dataset.
func Rows(doc types.Document, items []types.ParsedItem) []types.OutputRow {
	var rows []types.OutputRow
	for i, item := range items {
		r := Materialize(doc, i, item)
		if len(r) == 0 {
			r = []types.OutputRow{SentinelRow(doc, i, item)}
		}
		rows = append(rows, r...)
	}
	return rows
}
