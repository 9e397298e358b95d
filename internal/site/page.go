package site

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"path"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/render"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

const shortTitleLen = 22

// Output is one emitted file, Path relative to the output root using '/'.
type Output struct {
	Path    string
	Content []byte
}

// LessonFilename derives a lesson page name from seq alone, so retitling a
// lesson never breaks inbound links.
func LessonFilename(seq int) string {
	return fmt.Sprintf("%02d.html", seq)
}

// shortTitle truncates to maxLen runes including the trailing ellipsis.
func shortTitle(t string, maxLen int) string {
	t = strings.TrimSpace(t)
	if utf8.RuneCountInString(t) <= maxLen {
		return t
	}
	r := []rune(t)
	return string(r[:maxLen-1]) + "…"
}

type chipView struct {
	File    string
	Label   string
	Current bool
}

type sectionView struct {
	ID    string
	Href  template.HTMLAttr
	Title string
	HTML  template.HTML
}

// fragmentHref builds href="#id" outside the URL escaper, which would
// percent-encode non-ASCII ids and stop them matching the section id.
func fragmentHref(id string) template.HTMLAttr {
	// #nosec G203 -- id is HTML-escaped
	return template.HTMLAttr(`href="` + html.EscapeString("#"+id) + `"`)
}

type pageView struct {
	Labels      render.Labels
	DocTitle    string
	SiteTitle   string
	Subtitle    string
	Footer      string
	HeadLinks   []headLinkView
	Stylesheet  string
	Script      string
	IndexHref   string
	File        string
	Seq         int
	Title       string
	LessonChips []chipView
	Sections    []sectionView
	Prev        string
	Next        string
}

// AssemblePage builds the page for lessons[i]. Prev/next point at the
// adjacent lessons in document order; the first and last lesson get an empty
// placeholder instead.
func AssemblePage(lessons []book.Lesson, i int, env Env) (Output, error) {
	if i < 0 || i >= len(lessons) {
		return Output{}, lberrors.InternalError(fmt.Sprintf("lesson index %d out of range", i), nil)
	}
	env = env.withDefaults()
	l := lessons[i]
	labels := env.Renderer.Labels()
	file := LessonFilename(l.Seq)

	v := pageView{
		Labels:     labels,
		DocTitle:   fmt.Sprintf("%s %d: %s | %s", labels.Lesson, l.Seq, l.Title, env.SiteTitle),
		SiteTitle:  env.SiteTitle,
		Subtitle:   env.Subtitle,
		Footer:     env.Footer,
		HeadLinks:  headLinks(env.HeadLinks, true),
		Stylesheet: fromPages(env.Stylesheet),
		Script:     fromPages(env.Script),
		IndexHref:  fromPages(env.IndexFile),
		File:       file,
		Seq:        l.Seq,
		Title:      l.Title,
	}
	for j, other := range lessons {
		v.LessonChips = append(v.LessonChips, chipView{
			File:    LessonFilename(other.Seq),
			Label:   fmt.Sprintf("%02d %s", other.Seq, shortTitle(other.Title, shortTitleLen)),
			Current: j == i,
		})
	}
	for _, s := range l.Sections {
		v.Sections = append(v.Sections, sectionView{ID: s.ID, Href: fragmentHref(s.ID), Title: s.Title, HTML: AssembleSection(env.Renderer, s)})
	}
	if i > 0 {
		v.Prev = LessonFilename(lessons[i-1].Seq)
	}
	if i < len(lessons)-1 {
		v.Next = LessonFilename(lessons[i+1].Seq)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page.html.tmpl", v); err != nil {
		return Output{}, lberrors.RenderFailed(file, err)
	}
	return Output{Path: path.Join(env.PagesDir, file), Content: buf.Bytes()}, nil
}
