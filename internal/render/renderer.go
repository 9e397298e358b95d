// Package render turns content blocks into self-contained HTML fragments.
//
// Rendering is pure: the same block always yields the same fragment. Every
// user supplied string is escaped before it reaches the output.
package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
)

// Options configures a Renderer.
type Options struct {
	// MarkdownText renders text blocks as CommonMark. Raw HTML in the source is omitted.
	MarkdownText bool
	Labels       Labels
}

// Renderer renders content blocks.
type Renderer struct {
	opts Options
	md   goldmark.Markdown
}

// New creates a Renderer. A zero Labels value selects the default labels.
func New(opts Options) *Renderer {
	if opts.Labels.Lang == "" {
		opts.Labels = LabelsFor("")
	}
	r := &Renderer{opts: opts}
	if opts.MarkdownText {
		r.md = goldmark.New()
	}
	return r
}

// Labels returns the label set the renderer was built with.
func (r *Renderer) Labels() Labels { return r.opts.Labels }

// Render dispatches on the block variant. Unknown and empty blocks render to "".
func (r *Renderer) Render(b book.Block) template.HTML {
	switch v := b.(type) {
	case *book.Heading:
		return r.heading(v)
	case *book.Text:
		return r.text(v)
	case *book.List:
		return r.list(v)
	case *book.Table:
		return r.table(v)
	case *book.Box:
		return r.box(v)
	default:
		return ""
	}
}

var esc = html.EscapeString

func (r *Renderer) heading(h *book.Heading) template.HTML {
	if h.Text == "" {
		return ""
	}
	if h.Level <= 3 {
		return template.HTML(`<h3 class="text-lg font-black mt-6">` + esc(h.Text) + `</h3>`)
	}
	return template.HTML(`<h4 class="text-base font-extrabold mt-5">` + esc(h.Text) + `</h4>`)
}

func (r *Renderer) text(t *book.Text) template.HTML {
	if t.Text == "" {
		return ""
	}
	if r.md != nil {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(t.Text), &buf); err == nil {
			return template.HTML(`<div class="text-gray-700 leading-7 text-sm mt-3">` + strings.TrimSpace(buf.String()) + `</div>`)
		}
	}
	return template.HTML(`<p class="text-gray-700 leading-7 text-sm mt-3">` + esc(t.Text) + `</p>`)
}

func (r *Renderer) list(l *book.List) template.HTML {
	if len(l.Items) == 0 {
		return ""
	}
	tag, cls := "ul", "list-disc"
	if l.Ordered {
		tag, cls = "ol", "list-decimal"
	}
	var b strings.Builder
	b.WriteString(`<div class="mt-4">`)
	if l.Title != "" {
		b.WriteString(`<div class="text-xs text-gray-500 mb-2">` + esc(l.Title) + `</div>`)
	}
	b.WriteString(`<` + tag + ` class="` + cls + ` pr-5 text-sm text-gray-700 space-y-1">`)
	for _, it := range l.Items {
		b.WriteString(`<li class="mb-1">` + esc(it) + `</li>`)
	}
	b.WriteString(`</` + tag + `></div>`)
	return template.HTML(b.String())
}

func (r *Renderer) table(t *book.Table) template.HTML {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="mt-5 overflow-x-auto rounded-2xl border border-gray-200">`)
	if t.Title != "" {
		b.WriteString(`<div class="font-extrabold mb-3">` + esc(t.Title) + `</div>`)
	}
	b.WriteString(`<table class="w-full text-sm"><thead class="bg-gray-50 text-gray-700"><tr>`)
	for _, h := range t.Headers {
		b.WriteString(`<th class="p-3 text-right">` + esc(h) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody class="divide-y">`)
	for _, row := range t.Rows {
		b.WriteString(`<tr class="hover:bg-gray-50">`)
		for _, c := range row {
			b.WriteString(`<td class="p-3 align-top">` + esc(c) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	if t.Note != "" {
		b.WriteString(`<div class="text-xs text-gray-500 mt-2">` + esc(t.Note) + `</div>`)
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

// BoxClass maps a box style to its CSS class.
func BoxClass(s book.BoxStyle) string {
	switch s {
	case book.BoxStyleWarning:
		return "warn-box"
	case book.BoxStyleSummary:
		return "diagnosis-box"
	case book.BoxStyleNote:
		return "good-box"
	default:
		return "card"
	}
}

func (r *Renderer) box(x *book.Box) template.HTML {
	title := x.Title
	if title == "" {
		title = r.opts.Labels.Note
	}
	return template.HTML(`<div class="` + BoxClass(x.Style) + ` p-4 rounded-2xl mt-4">` +
		`<div class="font-extrabold mb-2">` + esc(title) + `</div>` +
		`<div class="text-sm text-gray-700 leading-7">` + esc(x.Content) + `</div></div>`)
}
