// Package site assembles lesson pages and the index page from a normalized book.
//
// Compile is a pure function from a book to an ordered list of outputs; it
// never touches the filesystem. Writing the outputs is the build package's job.
package site
