package build

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lessonbuilder/internal/metrics"
)

func newTestState() *BuildState {
	return &BuildState{
		Report:   newBuildReport("book.json", time.Now()),
		Timings:  map[StageName]time.Duration{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

func TestRunStages_WarningContinuesFatalStops(t *testing.T) {
	bs := newTestState()
	var ran []StageName
	mk := func(name StageName, err error) StageDef {
		return StageDef{Name: name, Fn: func(context.Context, *BuildState) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := runStages(context.Background(), bs, []StageDef{
		mk("a", nil),
		mk("b", newWarnStageError("b", errors.New("meh"))),
		mk("c", errors.New("plain failure")),
		mk("d", nil),
	})
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorFatal, se.Kind)
	assert.Equal(t, StageName("c"), se.Stage)
	assert.Equal(t, []StageName{"a", "b", "c"}, ran)

	assert.Equal(t, StageCount{Success: 1}, bs.Report.StageCounts["a"])
	assert.Equal(t, StageCount{Warning: 1}, bs.Report.StageCounts["b"])
	assert.Equal(t, StageCount{Fatal: 1}, bs.Report.StageCounts["c"])
	bs.Report.finish(time.Now())
	assert.Equal(t, OutcomeFailed, bs.Report.Outcome)
}

func TestDeriveOutcome(t *testing.T) {
	r := newBuildReport("x", time.Now())
	r.deriveOutcome()
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	r.Warnings = append(r.Warnings, errors.New("w"))
	r.deriveOutcome()
	assert.Equal(t, OutcomeWarning, r.Outcome)

	r.Errors = append(r.Errors, newCanceledStageError(StageCompile, context.Canceled))
	r.deriveOutcome()
	assert.Equal(t, OutcomeCanceled, r.Outcome)
}

func TestBuildReport_Summary(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newBuildReport("x", start)
	r.Lessons, r.Sections, r.Pages = 3, 5, 3
	r.finish(start.Add(1500 * time.Millisecond))
	assert.Equal(t, "lessons=3 sections=5 pages=3 collisions=0 broken_links=0 duration=1.5s errors=0 warnings=0 outcome=success", r.Summary())
}
