package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lessonbuilder/internal/site"
)

func TestSourceRevision(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "data", "book.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(doc), 0o750))
	require.NoError(t, os.WriteFile(doc, []byte(`{}`), 0o600))

	assert.Empty(t, SourceRevision(doc), "outside a repository")

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("data/book.json")
	require.NoError(t, err)
	hash, err := wt.Commit("add book", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	assert.Equal(t, hash.String(), SourceRevision(doc))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("<html>a</html>"))
	assert.NotEmpty(t, a)
	assert.Equal(t, a, Fingerprint([]byte("<html>a</html>")))
	assert.NotEqual(t, a, Fingerprint([]byte("<html>b</html>")))
}

func TestWriter_RejectsEscapingPaths(t *testing.T) {
	w := NewWriter(t.TempDir())
	require.Error(t, w.Write(site.Output{Path: "../outside.html", Content: []byte("x")}))
	require.NoError(t, w.Write(site.Output{Path: "pages/01.html", Content: []byte("x")}))
	assert.FileExists(t, filepath.Join(w.Root, "pages", "01.html"))
}
