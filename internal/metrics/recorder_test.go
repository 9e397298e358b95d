package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	NoopRecorder
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	buildOutcomes  map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[string]int{}, stageResults: map[string]map[ResultLabel]int{}, buildOutcomes: map[string]int{}}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}

func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncBuildOutcome(outcome string) { t.buildOutcomes[outcome]++ }

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = newTestRecorder()
	var _ Recorder = (*PrometheusRecorder)(nil)
}

func TestTestRecorderCounts(t *testing.T) {
	r := newTestRecorder()
	var rec Recorder = r
	rec.ObserveStageDuration("compile", time.Millisecond)
	rec.IncStageResult("compile", ResultSuccess)
	rec.IncStageResult("compile", ResultWarning)
	rec.IncBuildOutcome("warning")
	rec.AddPagesWritten(3)

	if r.stageDurations["compile"] != 1 {
		t.Fatalf("expected 1 duration observation, got %d", r.stageDurations["compile"])
	}
	if r.stageResults["compile"][ResultWarning] != 1 {
		t.Fatalf("expected warning count 1, got %d", r.stageResults["compile"][ResultWarning])
	}
	if r.buildOutcomes["warning"] != 1 {
		t.Fatalf("expected warning outcome 1, got %d", r.buildOutcomes["warning"])
	}
}
