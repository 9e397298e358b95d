// Package slug turns display text into anchor-safe identifiers.
//
// Slugify performs no collision resolution; callers that need unique ids
// (section anchors within a page) must disambiguate themselves.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when nothing survives normalization.
const Fallback = "page"

var lower = cases.Lower(language.Und)

// Slugify lowercases text, drops everything but letters, digits, '_', '-',
// whitespace and Arabic-script letters, then joins words with single hyphens.
func Slugify(text string) string {
	s := strings.TrimSpace(text)
	s = norm.NFC.String(s)
	s = lower.String(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '-':
			pendingSep = true
		case keep(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// Valid reports whether id is already a fixed point of Slugify.
func Valid(id string) bool {
	return id != "" && Slugify(id) == id
}

func keep(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || (r >= 'آ' && r <= 'ی')
}
