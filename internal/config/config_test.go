package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lessonbuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "input: book.yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, "book.yaml", cfg.Input)
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, "pages", cfg.Output.PagesDir)
	assert.Equal(t, "index.html", cfg.Output.IndexFile)
	assert.True(t, cfg.Output.ReportEnabled())
	assert.Equal(t, "fa", cfg.Site.Lang)
	assert.Equal(t, "assets/styles.css", cfg.Site.Stylesheet)
	assert.Equal(t, "assets/app.js", cfg.Site.Script)
	first, last := cfg.Retrofit.Bounds()
	assert.Equal(t, 7, first)
	assert.Equal(t, 43, last)
	assert.Equal(t, "global-sidebar", cfg.Retrofit.Marker)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("LB_TEST_OUT", "/srv/course")
	cfg, err := Load(writeConfig(t, "output:\n  directory: ${LB_TEST_OUT}\n  report: false\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/course", cfg.Output.Directory)
	assert.False(t, cfg.Output.ReportEnabled())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, lberrors.IsCategory(err, lberrors.CategoryConfig))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "output: [\n"},
		{"nested pages dir", "output:\n  pages_dir: a/b\n"},
		{"inverted range", "retrofit:\n  first: 10\n  last: 3\n"},
		{"unknown head link", "site:\n  head_links:\n    - type: font\n      href: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, lberrors.IsCategory(err, lberrors.CategoryConfig))
		})
	}
}

func TestLoad_ExplicitZeroRetrofitBounds(t *testing.T) {
	cfg, err := Load(writeConfig(t, "retrofit:\n  first: 0\n  last: 0\n"))
	require.NoError(t, err)
	first, last := cfg.Retrofit.Bounds()
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, last)

	cfg, err = Load(writeConfig(t, "retrofit:\n  last: 12\n"))
	require.NoError(t, err)
	first, last = cfg.Retrofit.Bounds()
	assert.Equal(t, 7, first, "unset first keeps its default")
	assert.Equal(t, 12, last)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data/book.json", cfg.Input)
	assert.Equal(t, "pages", cfg.Retrofit.PagesDir)
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonbuilder.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "second init without force must refuse")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Site.HeadLinks, 2)
	assert.True(t, cfg.Build.VerifyLinks)
}

func TestResolveOverrides(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "data/book.json", cfg.ResolveInput(""))
	assert.Equal(t, "other.yaml", cfg.ResolveInput("other.yaml"))
	assert.Equal(t, ".", cfg.ResolveOutputDir(""))
	assert.Equal(t, "public", cfg.ResolveOutputDir("public"))
}
