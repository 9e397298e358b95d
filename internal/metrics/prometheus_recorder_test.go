package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("compile", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("compile", ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.AddPagesWritten(4)
	pr.IncPatchResult("patched")
	pr.IncPatchResult("patched")
	pr.SetBrokenLinks(2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	assert.InDelta(t, 4, testutil.ToFloat64(pr.pagesWritten), 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.patchResults.WithLabelValues("patched")), 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.brokenLinks), 0.001)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("compile", time.Second)
	pr.IncBuildOutcome("failed")
	pr.AddPagesWritten(1)
	require.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("success")

	path := filepath.Join(t.TempDir(), "lessonbuilder.prom")
	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 -- test reads its own temp output
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `lessonbuilder_build_outcomes_total{outcome="success"} 1`), string(b))
}
