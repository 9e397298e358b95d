package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation stripped", "Lesson 1!!", "lesson-1"},
		{"empty", "", Fallback},
		{"only punctuation", "?!.", Fallback},
		{"whitespace runs", "  Intro   to\tGo  ", "intro-to-go"},
		{"hyphen runs", "a -- b", "a-b"},
		{"leading and trailing hyphens", "-x-", "x"},
		{"underscore kept", "snake_case Title", "snake_case-title"},
		{"persian", "مقدمه درس", "مقدمه-درس"},
		{"mixed script", "درس ۳: Go!", "درس-۳-go"},
		{"intro", "Intro", "intro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Stable(t *testing.T) {
	for _, in := range []string{"Lesson 1!!", "مقدمه", "", "A  B"} {
		assert.Equal(t, Slugify(in), Slugify(in))
		assert.True(t, Valid(Slugify(in)), "slug of %q must be a fixed point", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("intro-to-go"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Intro"))
	assert.False(t, Valid("a--b"))
}
