package site

import (
	"bytes"
	"path"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/render"
)

type cardView struct {
	Href         string
	Seq          int
	Title        string
	SectionCount int
}

type indexView struct {
	Labels     render.Labels
	SiteTitle  string
	HeadLinks  []headLinkView
	Stylesheet string
	BuiltAt    string
	Cards      []cardView
}

// AssembleIndex builds the listing page with one card per lesson in document
// order and the inline filter script.
func AssembleIndex(lessons []book.Lesson, env Env) (Output, error) {
	env = env.withDefaults()
	v := indexView{
		Labels:     env.Renderer.Labels(),
		SiteTitle:  env.SiteTitle,
		HeadLinks:  headLinks(env.HeadLinks, false),
		Stylesheet: env.Stylesheet,
	}
	if !env.BuiltAt.IsZero() {
		v.BuiltAt = env.BuiltAt.Format("2006-01-02")
	}
	for _, l := range lessons {
		v.Cards = append(v.Cards, cardView{
			Href:         path.Join(env.PagesDir, LessonFilename(l.Seq)),
			Seq:          l.Seq,
			Title:        l.Title,
			SectionCount: len(l.Sections),
		})
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html.tmpl", v); err != nil {
		return Output{}, lberrors.RenderFailed(env.IndexFile, err)
	}
	return Output{Path: env.IndexFile, Content: buf.Bytes()}, nil
}
