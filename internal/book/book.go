// Package book holds the lesson document model.
//
// A Book is built once by Decode and is fully defaulted: every renderer
// downstream reads fields directly without re-checking for absent values.
package book

import "sort"

// Book is an ordered sequence of lessons.
type Book struct {
	Lessons []Lesson
}

// Lesson compiles to exactly one output page named after Seq.
type Lesson struct {
	Seq      int
	Title    string
	Sections []Section
}

// Section is an anchor-addressable part of a lesson page. ID is unique
// within its lesson and is a valid slug.
type Section struct {
	ID     string
	Title  string
	Blocks []Block
}

// DuplicateSeqs returns the sequence numbers used by more than one lesson, ascending.
func (b *Book) DuplicateSeqs() []int {
	seen := make(map[int]int, len(b.Lessons))
	for _, l := range b.Lessons {
		seen[l.Seq]++
	}
	var dups []int
	for seq, n := range seen {
		if n > 1 {
			dups = append(dups, seq)
		}
	}
	sort.Ints(dups)
	return dups
}

// SectionCount is the total number of sections across all lessons.
func (b *Book) SectionCount() int {
	n := 0
	for _, l := range b.Lessons {
		n += len(l.Sections)
	}
	return n
}
