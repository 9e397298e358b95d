package retrofit

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Landmark failures. Patch wraps them with the file name.
var (
	ErrNoBody        = errors.New("no <body> tag")
	ErrMalformedBody = errors.New("malformed <body> tag")
	ErrNoMain        = errors.New("no <main> tag")
)

// landmarks are byte offsets into the page: the region (bodyEnd, mainStart)
// is the old header that gets replaced.
type landmarks struct {
	bodyEnd   int // index of the '>' closing the body start tag
	mainStart int // index of '<' opening the main start tag
}

func findLandmarks(page string) (landmarks, error) {
	b := indexStartTag(page, "body", 0)
	if b < 0 {
		return landmarks{}, ErrNoBody
	}
	end := strings.IndexByte(page[b:], '>')
	if end < 0 {
		return landmarks{}, ErrMalformedBody
	}
	bodyEnd := b + end
	m := indexStartTag(page, "main", bodyEnd+1)
	if m < 0 {
		return landmarks{}, ErrNoMain
	}
	return landmarks{bodyEnd: bodyEnd, mainStart: m}, nil
}

// indexStartTag finds "<name" at or after from, where the tag name is not
// just a prefix of a longer name.
func indexStartTag(s, name string, from int) int {
	needle := "<" + name
	for from <= len(s) {
		i := strings.Index(s[from:], needle)
		if i < 0 {
			return -1
		}
		at := from + i
		next := at + len(needle)
		if next >= len(s) || isTagNameEnd(s[next]) {
			return at
		}
		from = next
	}
	return -1
}

func isTagNameEnd(c byte) bool {
	switch c {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// firstHeading returns the whitespace-collapsed text of the first <h1> in
// fragment, or "" when there is none.
func firstHeading(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	depth := 0
	var text strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapse(text.String())
		case html.StartTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.H1 {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.H1 && depth > 0 {
				return collapse(text.String())
			}
		case html.TextToken:
			if depth > 0 {
				text.Write(z.Text())
			}
		}
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
