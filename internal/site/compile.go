package site

import (
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
)

// Collision records lessons that mapped to the same output file. The last
// lesson in document order wins.
type Collision struct {
	Path    string `json:"path"`
	Seq     int    `json:"seq"`
	Lessons []int  `json:"lessons"` // zero-based positions in the book, in document order
}

// Result is the outcome of Compile.
type Result struct {
	// Outputs holds lesson pages in document order followed by the index page.
	Outputs    []Output
	Collisions []Collision
	Lessons    int
	Sections   int
}

// Pages returns the number of lesson pages in Outputs.
func (r *Result) Pages() int {
	if len(r.Outputs) == 0 {
		return 0
	}
	return len(r.Outputs) - 1
}

// Compile maps a book to its output files without performing any I/O.
func Compile(b *book.Book, env Env) (*Result, error) {
	env = env.withDefaults()
	if b == nil {
		b = &book.Book{}
	}
	if env.StrictSequence {
		if dups := b.DuplicateSeqs(); len(dups) > 0 {
			return nil, lberrors.ValidationFailed("lessons.seq", "duplicate sequence numbers: "+joinInts(dups))
		}
	}

	res := &Result{Lessons: len(b.Lessons), Sections: b.SectionCount()}
	byPath := make(map[string]int, len(b.Lessons))
	firstLesson := make(map[string]int, len(b.Lessons))
	collisions := make(map[string]int)

	for i := range b.Lessons {
		out, err := AssemblePage(b.Lessons, i, env)
		if err != nil {
			return nil, fmt.Errorf("lesson %d: %w", b.Lessons[i].Seq, err)
		}
		idx, seen := byPath[out.Path]
		if !seen {
			byPath[out.Path] = len(res.Outputs)
			firstLesson[out.Path] = i
			res.Outputs = append(res.Outputs, out)
			continue
		}
		res.Outputs[idx] = out
		if c, ok := collisions[out.Path]; ok {
			res.Collisions[c].Lessons = append(res.Collisions[c].Lessons, i)
			continue
		}
		collisions[out.Path] = len(res.Collisions)
		res.Collisions = append(res.Collisions, Collision{
			Path:    out.Path,
			Seq:     b.Lessons[i].Seq,
			Lessons: []int{firstLesson[out.Path], i},
		})
	}

	index, err := AssembleIndex(b.Lessons, env)
	if err != nil {
		return nil, err
	}
	res.Outputs = append(res.Outputs, index)
	return res, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
