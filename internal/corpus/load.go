// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/council-votes/pkg/types"
)

type decoder func(source string, data []byte) (types.Document, error)

var decoders = map[string]decoder{
	".txt":  decodeText,
	".md":   decodeText,
	".json": decodeOCR,
	".html": decodeHTML,
	".htm":  decodeHTML,
}

// Supported reports whether Load can read the named file.
func Supported(name string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Load reads one meeting document. The meeting date comes from the file
// name; the format is chosen by extension.
func Load(path string) (types.Document, error) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return types.Document{}, fmt.Errorf("unsupported document type %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc, err := dec(filepath.Base(path), data)
	if err != nil {
		return types.Document{}, fmt.Errorf("decoding document %s: %w", path, err)
	}
	return doc, nil
}

func decodeText(source string, data []byte) (types.Document, error) {
	return types.Document{Source: source, Date: DateFromFilename(source), Text: string(data)}, nil
}

// ocrOutput is the JSON written by the OCR stage. Messages is either a list
// or an object keyed by message number.
type ocrOutput struct {
	Messages json.RawMessage `json:"messages"`
}

type ocrPage struct {
	PageContent string `json:"page_content"`
	Metadata    struct {
		PageNumber int `json:"page_number"`
	} `json:"metadata"`
}

func decodeOCR(source string, data []byte) (types.Document, error) {
	var out ocrOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return types.Document{}, fmt.Errorf("parsing OCR output: %w", err)
	}

	messages, err := orderedMessages(out.Messages)
	if err != nil {
		return types.Document{}, err
	}

	pages := make([]types.Page, 0, len(messages))
	for i, raw := range messages {
		p, err := decodePage(raw)
		if err != nil {
			return types.Document{}, fmt.Errorf("message %d: %w", i, err)
		}
		if p.Number == 0 {
			p.Number = i + 1
		}
		pages = append(pages, p)
	}
	return types.NewPaginatedDocument(source, DateFromFilename(source), pages), nil
}

func orderedMessages(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("parsing messages: %w", err)
		}
		return list, nil
	}

	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("parsing messages: %w", err)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	list := make([]json.RawMessage, len(keys))
	for i, k := range keys {
		list[i] = byKey[k]
	}
	return list, nil
}

// keyLess orders numeric keys numerically ahead of any other keys.
func keyLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

func decodePage(raw json.RawMessage) (types.Page, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return types.Page{Text: text}, nil
	}
	var p ocrPage
	if err := json.Unmarshal(raw, &p); err != nil {
		return types.Page{}, fmt.Errorf("expected text or page object: %w", err)
	}
	return types.Page{Number: p.Metadata.PageNumber, Text: p.PageContent}, nil
}

// blockElements start and end on their own line in extracted HTML text.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Tr: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Table: true, atom.Ul: true, atom.Ol: true, atom.Pre: true, atom.Blockquote: true,
	atom.Section: true, atom.Article: true, atom.Td: true,
}

func decodeHTML(source string, data []byte) (types.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return types.Document{}, fmt.Errorf("parsing HTML: %w", err)
	}
	return types.Document{Source: source, Date: DateFromFilename(source), Text: htmlText(root)}, nil
}

// htmlText flattens the document body to text, one block per line.
func htmlText(root *html.Node) string {
	var b strings.Builder
	newline := func() {
		s := b.String()
		if len(s) > 0 && s[len(s)-1] != '\n' {
			b.WriteByte('\n')
		}
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Head:
				return
			case atom.Br:
				b.WriteByte('\n')
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			newline()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			newline()
		}
	}
	walk(root)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
