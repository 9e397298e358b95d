package build

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/lessonbuilder/internal/site"
)

// OutputRecord describes one emitted file in the build report.
type OutputRecord struct {
	Path        string `json:"path"`
	Bytes       int    `json:"bytes"`
	Fingerprint string `json:"fingerprint"`
}

func newOutputRecord(out site.Output) OutputRecord {
	return OutputRecord{Path: out.Path, Bytes: len(out.Content), Fingerprint: Fingerprint(out.Content)}
}

// Fingerprint is the content fingerprint of a generated page. Pages carry no
// frontmatter, so the whole document is hashed as the body.
func Fingerprint(content []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(content))
}

// SourceRevision returns the HEAD commit of the git repository containing
// path, or "" when path is not inside a repository.
func SourceRevision(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
