package retrofit

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/lessonbuilder/internal/render"
)

// Outcome is the per-file result of a retrofit.
type Outcome string

const (
	OutcomePatched        Outcome = "patched"
	OutcomeAlreadyPatched Outcome = "skipped"
	OutcomeMissing        Outcome = "missing"
	OutcomeError          Outcome = "error"
)

// DefaultMarker is the element id of the sidebar mount point.
const DefaultMarker = "global-sidebar"

// Options customizes the injected markup.
type Options struct {
	Marker string
	Labels render.Labels
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.Labels.Lang == "" {
		o.Labels = render.LabelsFor("")
	}
	return o
}

// IsPatched reports whether page already carries the sidebar marker.
func IsPatched(page []byte, opts Options) bool {
	opts = opts.withDefaults()
	return strings.Contains(string(page), `id="`+opts.Marker+`"`)
}

// Patch replaces everything between the body start tag and the main start
// tag with the shared header and sidebar mount point. The header title is the
// text of the first <h1> in the replaced region, falling back to the file stem.
// An already patched page is returned unchanged with OutcomeAlreadyPatched.
func Patch(name string, page []byte, opts Options) (Outcome, []byte, error) {
	opts = opts.withDefaults()
	if IsPatched(page, opts) {
		return OutcomeAlreadyPatched, page, nil
	}
	text := string(page)
	lm, err := findLandmarks(text)
	if err != nil {
		return OutcomeError, page, fmt.Errorf("%s: %w", name, err)
	}

	title := firstHeading(text[lm.bodyEnd+1 : lm.mainStart])
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	var b strings.Builder
	b.Grow(len(text) + 512)
	b.WriteString(text[:lm.bodyEnd+1])
	b.WriteString(header(title, opts))
	b.WriteString(text[lm.mainStart:])
	return OutcomePatched, []byte(b.String()), nil
}

func header(title string, opts Options) string {
	l := opts.Labels
	return "\n" + `<header class="gradient-header text-white p-6 shadow-lg sticky top-0 z-50">` + "\n" +
		`  <div class="max-w-6xl mx-auto flex items-center justify-between">` + "\n" +
		`    <div>` + "\n" +
		`      <h1 class="text-2xl md:text-3xl font-black">` + html.EscapeString(title) + `</h1>` + "\n" +
		`      <p id="page-subtitle" class="text-blue-100 text-sm mt-1">` + html.EscapeString(l.RetrofitSubtitle) + `</p>` + "\n" +
		`    </div>` + "\n" +
		`    <button id="sidebarToggle" class="sidebar-toggle-btn">` + html.EscapeString(l.SidebarToggle) + `</button>` + "\n" +
		`  </div>` + "\n" +
		`</header>` + "\n\n" +
		`<div id="` + html.EscapeString(opts.Marker) + `" class="sidebar-root" aria-hidden="true"></div>` + "\n\n"
}
