package site

import (
	"path"
	"strings"
	"time"

	"git.home.luguber.info/inful/lessonbuilder/internal/render"
)

// HeadLink is an extra resource referenced from every page head.
type HeadLink struct {
	Type string // script|stylesheet
	Href string
}

// Env carries everything page assembly needs besides the book itself.
type Env struct {
	Renderer *render.Renderer

	// Overrides for the localized defaults.
	SiteTitle string
	Subtitle  string
	Footer    string

	HeadLinks  []HeadLink
	Stylesheet string // relative to the output root
	Script     string // relative to the output root
	PagesDir   string
	IndexFile  string

	// BuiltAt is shown on the index page; zero omits it.
	BuiltAt time.Time
	// StrictSequence turns duplicate lesson seq values into an error.
	StrictSequence bool
}

func (e Env) withDefaults() Env {
	if e.Renderer == nil {
		e.Renderer = render.New(render.Options{})
	}
	l := e.Renderer.Labels()
	if e.SiteTitle == "" {
		e.SiteTitle = l.SiteTitle
	}
	if e.Subtitle == "" {
		e.Subtitle = l.Subtitle
	}
	if e.Footer == "" {
		e.Footer = l.Footer
	}
	if e.Stylesheet == "" {
		e.Stylesheet = "assets/styles.css"
	}
	if e.Script == "" {
		e.Script = "assets/app.js"
	}
	if e.PagesDir == "" {
		e.PagesDir = "pages"
	}
	if e.IndexFile == "" {
		e.IndexFile = "index.html"
	}
	return e
}

// fromPages rewrites a root-relative reference for use inside PagesDir.
// Absolute URLs and absolute paths are returned unchanged.
func fromPages(ref string) string {
	if ref == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return ref
	}
	return path.Join("..", ref)
}

type headLinkView struct {
	Script bool
	Href   string
}

func headLinks(links []HeadLink, inPages bool) []headLinkView {
	out := make([]headLinkView, 0, len(links))
	for _, l := range links {
		href := l.Href
		if inPages {
			href = fromPages(href)
		}
		out = append(out, headLinkView{Script: l.Type == "script", Href: href})
	}
	return out
}
