package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/lessonbuilder/internal/book"
	"git.home.luguber.info/inful/lessonbuilder/internal/config"
	"git.home.luguber.info/inful/lessonbuilder/internal/linkcheck"
	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
	"git.home.luguber.info/inful/lessonbuilder/internal/metrics"
	"git.home.luguber.info/inful/lessonbuilder/internal/site"
)

// Stage is a discrete unit of work in the build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Config    *config.Config
	Input     string
	OutputDir string
	Env       site.Env
	Book      *book.Book
	Compiled  *site.Result
	Written   []string // slash-separated paths relative to OutputDir
	Report    *BuildReport
	Timings   map[StageName]time.Duration

	recorder metrics.Recorder
	logger   *slog.Logger
}

// runStages executes stages in order, recording timing and stopping on the first fatal error.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStage(st.Name, se)
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		bs.Report.StageDurations[string(st.Name)] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			bs.Report.recordStage(st.Name, nil)
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
			bs.logger.Debug("Stage complete", logfields.Stage(string(st.Name)), logfields.DurationMS(float64(dur.Microseconds())/1000))
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.recordStage(st.Name, se)
		switch se.Kind {
		case StageErrorWarning:
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultWarning)
			bs.logger.Warn("Stage completed with warnings", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			continue
		case StageErrorCanceled:
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			return se
		}
	}
	return nil
}

func stageLoadDocument(_ context.Context, bs *BuildState) error {
	b, err := book.Load(bs.Input)
	if err != nil {
		return newFatalStageError(StageLoadDocument, fmt.Errorf("%w: %w", ErrLoad, err))
	}
	bs.Book = b
	bs.Report.Lessons = len(b.Lessons)
	bs.Report.Sections = b.SectionCount()
	bs.Report.SourceRevision = SourceRevision(bs.Input)
	bs.logger.Info("Loaded lesson document",
		logfields.Path(bs.Input),
		slog.Int("lessons", len(b.Lessons)),
		slog.Int("sections", bs.Report.Sections))
	for _, l := range b.Lessons {
		for _, s := range l.Sections {
			bs.logger.Debug("Section anchor", logfields.Lesson(l.Seq), logfields.Section(s.ID))
		}
	}
	return nil
}

func stageCompile(_ context.Context, bs *BuildState) error {
	res, err := site.Compile(bs.Book, bs.Env)
	if err != nil {
		return newFatalStageError(StageCompile, fmt.Errorf("%w: %w", ErrCompile, err))
	}
	bs.Compiled = res
	bs.Report.Collisions = res.Collisions
	if len(res.Collisions) == 0 {
		return nil
	}
	for _, c := range res.Collisions {
		bs.logger.Warn("Duplicate lesson sequence; last lesson wins",
			logfields.File(c.Path), logfields.Lesson(c.Seq), logfields.Count(len(c.Lessons)))
	}
	return newWarnStageError(StageCompile, fmt.Errorf("%w: %d output collision(s) from duplicate seq", ErrCompile, len(res.Collisions)))
}

func stageWriteOutputs(ctx context.Context, bs *BuildState) error {
	w := NewWriter(bs.OutputDir)
	for _, out := range bs.Compiled.Outputs {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageWriteOutputs, ctx.Err())
		default:
		}
		if err := w.Write(out); err != nil {
			return newFatalStageError(StageWriteOutputs, fmt.Errorf("%w: %w", ErrWrite, err))
		}
		bs.Written = append(bs.Written, out.Path)
		bs.Report.Outputs = append(bs.Report.Outputs, newOutputRecord(out))
		bs.logger.Debug("Wrote output", logfields.Path(out.Path), slog.Int("bytes", len(out.Content)))
	}
	bs.Report.Pages = bs.Compiled.Pages()
	bs.recorder.AddPagesWritten(bs.Compiled.Pages())
	return nil
}

func stageVerifyLinks(_ context.Context, bs *BuildState) error {
	if !bs.Config.Build.VerifyLinks {
		return nil
	}
	res, err := linkcheck.CheckFiles(bs.OutputDir, bs.Written)
	if err != nil {
		return newWarnStageError(StageVerifyLinks, fmt.Errorf("%w: %w", ErrVerify, err))
	}
	bs.Report.BrokenLinks = res.Broken
	bs.recorder.SetBrokenLinks(len(res.Broken))
	if res.OK() {
		return nil
	}
	for _, b := range res.Broken {
		bs.logger.Warn("Broken link", logfields.File(b.Source), slog.String("href", b.Href), slog.String("reason", b.Reason))
	}
	return newWarnStageError(StageVerifyLinks, fmt.Errorf("%w: %d broken link(s)", ErrVerify, len(res.Broken)))
}

func defaultStages() []StageDef {
	return []StageDef{
		{StageLoadDocument, stageLoadDocument},
		{StageCompile, stageCompile},
		{StageWriteOutputs, stageWriteOutputs},
		{StageVerifyLinks, stageVerifyLinks},
	}
}
