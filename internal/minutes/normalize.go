// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n")

// Normalize prepares raw minutes text for segmentation. It folds Unicode
// compatibility forms (OCR ligatures, non-breaking spaces), unifies line
// breaks, removes the configured boilerplate, and trims trailing blanks from
// every line. Line breaks are preserved; downstream stages use them as field
// delimiters.
func (g *Grammar) Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = lineBreaks.Replace(text)
	for _, re := range g.strip {
		text = re.ReplaceAllString(text, "")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\f\v")
	}
	return strings.Join(lines, "\n")
}
