package build

import "errors"

// Sentinel errors classifying which stage of the pipeline failed. They are
// always wrapped with context at the call site.
var (
	ErrLoad    = errors.New("lessonbuilder: load error")
	ErrCompile = errors.New("lessonbuilder: compile error")
	ErrWrite   = errors.New("lessonbuilder: write error")
	ErrVerify  = errors.New("lessonbuilder: verify error")
)
