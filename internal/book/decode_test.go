package book

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
)

func decodeJSON(t *testing.T, doc string) *Book {
	t.Helper()
	b, err := Decode(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	return b
}

func TestDecode_MinimalDocument(t *testing.T) {
	b := decodeJSON(t, `{"lessons":[{"seq":1,"title":"A","sections":[{"title":"Intro","content":[{"type":"text","text":"hi"}]}]}]}`)

	require.Len(t, b.Lessons, 1)
	l := b.Lessons[0]
	assert.Equal(t, 1, l.Seq)
	assert.Equal(t, "A", l.Title)
	require.Len(t, l.Sections, 1)
	assert.Equal(t, "intro", l.Sections[0].ID)
	require.Len(t, l.Sections[0].Blocks, 1)
	assert.Equal(t, &Text{Text: "hi"}, l.Sections[0].Blocks[0])
}

func TestDecode_SeqDefaults(t *testing.T) {
	b := decodeJSON(t, `{"lessons":[{"title":"no seq"},{"seq":"12"},{"seq":0},{"seq":7.0},{"seq":-4},{"seq":true}]}`)

	var seqs []int
	for _, l := range b.Lessons {
		seqs = append(seqs, l.Seq)
	}
	assert.Equal(t, []int{1, 12, 3, 7, 5, 6}, seqs)
}

func TestDecode_SectionIDs(t *testing.T) {
	b := decodeJSON(t, `{"lessons":[{"seq":1,"sections":[
		{"title":"Intro"},
		{"title":"Intro"},
		{"id":"Custom Anchor","title":"x"},
		{},
		{"title":""},
		{"title":"Intro"}
	]}]}`)

	var ids []string
	for _, s := range b.Lessons[0].Sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"intro", "intro-2", "custom-anchor", "section", "section-2", "intro-3"}, ids)
}

func TestDecode_BlockNormalization(t *testing.T) {
	b := decodeJSON(t, `{"lessons":[{"seq":1,"sections":[{"title":"S","content":[
		{"type":"heading","text":"  H  "},
		{"type":"heading","level":"5","text":"deep"},
		{"type":"heading","level":0,"text":"zero"},
		{"type":"list","items":["", "   ", 3, " a "],"ordered":1,"title":"T"},
		{"type":"table","rows":[[1, true, null, "x"]]},
		{"type":"box","style":" WARNING ","content":" c "},
		{"type":"box","style":"fancy"},
		{"type":"box"},
		{"type":"video","src":"x.mp4"}
	]}]}]}`)

	blocks := b.Lessons[0].Sections[0].Blocks
	require.Len(t, blocks, 9)
	assert.Equal(t, &Heading{Level: 3, Text: "H"}, blocks[0])
	assert.Equal(t, &Heading{Level: 5, Text: "deep"}, blocks[1])
	assert.Equal(t, &Heading{Level: 3, Text: "zero"}, blocks[2])
	assert.Equal(t, &List{Items: []string{"a"}, Ordered: true, Title: "T"}, blocks[3])
	assert.Equal(t, &Table{Headers: []string{"", "", "", ""}, Rows: [][]string{{"1", "true", "", "x"}}}, blocks[4])
	assert.Equal(t, &Box{Style: BoxStyleWarning, Content: "c"}, blocks[5])
	assert.Equal(t, BoxStyleCard, blocks[6].(*Box).Style)
	assert.Equal(t, BoxStyleNote, blocks[7].(*Box).Style)
	assert.Equal(t, &Unknown{Type: "video"}, blocks[8])
	assert.Equal(t, Tag("video"), blocks[8].Tag())
}

func TestDecode_YAML(t *testing.T) {
	doc := `
lessons:
  - seq: 2
    title: Second
    sections:
      - title: Facts
        content:
          - type: table
            headers: [k, v]
            rows:
              - [pi, 3.14]
              - [n, 42]
`
	b, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	tbl := b.Lessons[0].Sections[0].Blocks[0].(*Table)
	assert.Equal(t, []string{"k", "v"}, tbl.Headers)
	assert.Equal(t, [][]string{{"pi", "3.14"}, {"n", "42"}}, tbl.Rows)
}

func TestDecode_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"array root", `[]`},
		{"lessons not a list", `{"lessons":{}}`},
		{"lesson not an object", `{"lessons":[1]}`},
		{"sections not a list", `{"lessons":[{"sections":"x"}]}`},
		{"block not an object", `{"lessons":[{"sections":[{"content":["x"]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.True(t, lberrors.IsCategory(err, lberrors.CategoryDocument))
		})
	}
}

func TestDecode_MissingLessonsIsEmpty(t *testing.T) {
	b := decodeJSON(t, `{}`)
	assert.Empty(t, b.Lessons)
}

func TestDuplicateSeqs(t *testing.T) {
	b := decodeJSON(t, `{"lessons":[{"seq":7},{"seq":3},{"seq":7},{"seq":3},{"seq":1}]}`)
	assert.Equal(t, []int{3, 7}, b.DuplicateSeqs())
	assert.Equal(t, 0, b.SectionCount())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lessons":[{"seq":1}]}`), 0o600))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, b.Lessons, 1)

	_, err = Load(filepath.Join(dir, "book.txt"))
	require.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, lberrors.IsCategory(err, lberrors.CategoryDocument))
}
