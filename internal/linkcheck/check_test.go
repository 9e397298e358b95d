package linkcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
	return root
}

func TestCheck_AllResolved(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":    `<a href="pages/01.html">one</a><a href="https://example.com/x">ext</a>`,
		"pages/01.html": `<section id="intro"></section><a href="#intro">i</a><a href="02.html#%D9%85%D9%82%D8%AF%D9%85%D9%87">m</a><a href="../index.html">home</a>`,
		"pages/02.html": `<section id="مقدمه"></section><a href="01.html">prev</a>`,
	})

	res, err := Check(root)
	require.NoError(t, err)
	assert.True(t, res.OK(), "%+v", res.Broken)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 6, res.Links)
}

func TestCheck_ReportsBroken(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":    `<a href="pages/09.html">missing</a>`,
		"pages/01.html": `<a href="#nope">x</a><a href="../../up.html">y</a>`,
	})

	res, err := Check(root)
	require.NoError(t, err)
	require.Len(t, res.Broken, 3)
	assert.Equal(t, BrokenLink{Source: "index.html", Href: "pages/09.html", Reason: "target file missing"}, res.Broken[0])
	assert.Equal(t, "fragment #nope not found", res.Broken[1].Reason)
	assert.Equal(t, "target outside output root", res.Broken[2].Reason)
	assert.Equal(t, "pages=2 links=3 broken=3", res.Summary())
}

func TestCheckFiles_LimitsSources(t *testing.T) {
	root := writeTree(t, map[string]string{
		"ours.html":   `<a href="theirs.html#b">x</a>`,
		"theirs.html": `<p id="b"></p><a href="gone.html">broken but not ours</a>`,
	})

	res, err := CheckFiles(root, []string{"ours.html"})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Pages)
}
