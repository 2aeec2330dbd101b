// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/council-votes/internal/minutes"
	"github.com/pdiddy/council-votes/pkg/types"
)

func TestLoadText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Regular Meeting 5-2-2023.md", motionText)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Regular Meeting 5-2-2023.md", doc.Source)
	assert.Equal(t, motionText, doc.Text)
	assert.Equal(t, "2023-05-02", doc.DateString())
	assert.Empty(t, doc.Pages)
}

func TestLoadOCRObjectMessages(t *testing.T) {
	content := `{
  "publish_date": "2023-05-02",
  "messages": {
    "10": {"page_content": "third", "metadata": {"page_number": 10}},
    "2": {"page_content": "second", "metadata": {"page_number": 2}},
    "1": {"page_content": "first", "metadata": {"page_number": 1}}
  }
}`
	path := writeFile(t, t.TempDir(), "5-2-2023.json", content)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 3)
	assert.Equal(t, "first\nsecond\nthird", doc.Text)
	assert.Equal(t, 1, doc.PageAt(0))
	assert.Equal(t, 2, doc.PageAt(len("first\n")))
	assert.Equal(t, 10, doc.PageAt(len(doc.Text)-1))
}

func TestLoadOCRListOfStrings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "agenda.json", `{"messages": ["ROLL CALL", "MOTION NO. M-1 - BY: KING"]}`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.Nil(t, doc.Date)
}

func TestLoadOCRPagesParsed(t *testing.T) {
	content := `{"messages": [
  {"page_content": "ROLL CALL", "metadata": {"page_number": 1}},
  {"page_content": "MOTION NO. M-23-145 - BY: COUNCILMEMBER MORENO\nMOVED BY:\nMORENO\nMORENO, KING\nYEAS:\nAND THE MOTION PASSED.\n", "metadata": {"page_number": 2}}
]}`
	path := writeFile(t, t.TempDir(), "Regular Meeting 5-2-2023.json", content)

	doc, err := Load(path)
	require.NoError(t, err)

	items := minutes.DefaultGrammar().ParseDocument(doc)
	require.Len(t, items, 1)
	rows := minutes.Rows(doc, items)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Page)
	assert.Equal(t, types.OutcomePassed, rows[0].Outcome)
}

func TestLoadOCRRejectsBadMessage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "agenda.json", `{"messages": [42]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agenda.json")
}

func TestLoadHTML(t *testing.T) {
	content := `<html><head><title>Minutes</title><style>p { color: red }</style></head>
<body>
<script>var x = 1;</script>
<p>MOTION NO. M-23-145 - BY: COUNCILMEMBER MORENO</p>
<div>MOVED BY:<br>COUNCILMEMBER MORENO</div>
<p>MORENO, <b>KING</b><br/>YEAS:</p>
<p>AND THE MOTION PASSED.</p>
</body></html>`
	path := writeFile(t, t.TempDir(), "minutes 5-2-2023.html", content)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "MOTION NO. M-23-145 - BY: COUNCILMEMBER MORENO\n"+
		"MOVED BY:\nCOUNCILMEMBER MORENO\n"+
		"MORENO, KING\nYEAS:\n"+
		"AND THE MOTION PASSED.\n", doc.Text)

	items := minutes.DefaultGrammar().ParseDocument(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "MOTION M-23-145", items[0].Header.Designator)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "scan.pdf", "%PDF"))
	assert.Error(t, err)

	assert.True(t, Supported("A.TXT"))
	assert.False(t, Supported("scan.pdf"))
}
