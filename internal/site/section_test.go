package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
	"git.home.luguber.info/inful/lessonbuilder/internal/render"
)

func TestAssembleSection(t *testing.T) {
	r := render.New(render.Options{})
	s := book.Section{
		ID:    "intro",
		Title: "Intro",
		Blocks: []book.Block{
			&book.Text{Text: "first"},
			&book.Unknown{Type: "video"},
			&book.Text{Text: "second"},
		},
	}
	out := string(AssembleSection(r, s))

	assert.True(t, strings.HasPrefix(out, `<section id="intro" class="card p-6 scroll-mt-44"><h2 class="section-title text-xl">Intro</h2>`))
	assert.True(t, strings.HasSuffix(out, `</section>`))
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"), "blocks keep document order")
}

func TestShortTitle(t *testing.T) {
	assert.Equal(t, "short", shortTitle("  short ", 22))
	long := strings.Repeat("ب", 30)
	got := shortTitle(long, 22)
	assert.Equal(t, strings.Repeat("ب", 21)+"…", got)
	assert.Equal(t, strings.Repeat("x", 22), shortTitle(strings.Repeat("x", 22), 22))
}

func TestLessonFilename(t *testing.T) {
	assert.Equal(t, "07.html", LessonFilename(7))
	assert.Equal(t, "43.html", LessonFilename(43))
	assert.Equal(t, "120.html", LessonFilename(120))
}
