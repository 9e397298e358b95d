package build

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/fsutil"
	"git.home.luguber.info/inful/lessonbuilder/internal/site"
)

const outputPerm = 0o644

// Writer persists compiled outputs below Root.
type Writer struct {
	Root string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer { return &Writer{Root: dir} }

// Write writes one output atomically.
func (w *Writer) Write(out site.Output) error {
	rel := filepath.FromSlash(out.Path)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.WriteFailed(out.Path, errors.InternalError("output path escapes output root", nil))
	}
	full := filepath.Join(w.Root, rel)
	// #nosec G306 -- generated pages are public static files
	if err := fsutil.WriteFileAtomic(full, out.Content, outputPerm); err != nil {
		return errors.WriteFailed(full, err)
	}
	return nil
}
