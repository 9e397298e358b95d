package site

import (
	"html"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
	"git.home.luguber.info/inful/lessonbuilder/internal/render"
)

// AssembleSection renders a section's blocks in document order inside an
// element carrying the section's anchor id.
func AssembleSection(r *render.Renderer, s book.Section) template.HTML {
	var b strings.Builder
	b.WriteString(`<section id="` + html.EscapeString(s.ID) + `" class="card p-6 scroll-mt-44">`)
	b.WriteString(`<h2 class="section-title text-xl">` + html.EscapeString(s.Title) + `</h2>`)
	for _, blk := range s.Blocks {
		if frag := r.Render(blk); frag != "" {
			b.WriteString("\n")
			b.WriteString(string(frag))
		}
	}
	b.WriteString("\n</section>")
	return template.HTML(b.String()) // #nosec G203 -- all parts escaped above or by the renderer
}
