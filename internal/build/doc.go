// Package build runs the lessonbuilder pipeline: load the lesson document,
// compile it to pages, write the pages atomically and optionally verify links.
//
// Every execution path (the build command and watch mode) goes through
// BuildService. Each stage is timed and classified; the resulting BuildReport is
// persisted next to the output as build-report.json and build-report.txt.
package build
