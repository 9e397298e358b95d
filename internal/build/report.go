package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/lessonbuilder/internal/fsutil"
	"git.home.luguber.info/inful/lessonbuilder/internal/linkcheck"
	"git.home.luguber.info/inful/lessonbuilder/internal/site"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

const (
	reportJSON = "build-report.json"
	reportText = "build-report.txt"
)

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport captures high-level metrics about one build run.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Input           string
	SourceRevision  string // HEAD of the repository holding Input; empty outside git
	Lessons         int
	Sections        int
	Pages           int
	Outputs         []OutputRecord
	Collisions      []site.Collision
	BrokenLinks     []linkcheck.BrokenLink
	Start           time.Time
	End             time.Time
	Errors          []error // fatal errors causing build abortion (at most one today)
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
}

func newBuildReport(input string, start time.Time) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         uuid.NewString(),
		Input:           input,
		Start:           start,
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

// recordStage classifies a stage result; se is nil on success.
func (r *BuildReport) recordStage(name StageName, se *StageError) {
	sc := r.StageCounts[name]
	if se == nil {
		sc.Success++
		r.StageCounts[name] = sc
		return
	}
	r.StageErrorKinds[name] = se.Kind
	switch se.Kind {
	case StageErrorWarning:
		sc.Warning++
		r.Warnings = append(r.Warnings, se)
	case StageErrorCanceled:
		sc.Canceled++
		r.Errors = append(r.Errors, se)
	default:
		sc.Fatal++
		r.Errors = append(r.Errors, se)
	}
	r.StageCounts[name] = sc
}

func (r *BuildReport) finish(end time.Time) {
	r.End = end
	r.deriveOutcome()
}

// deriveOutcome sets the Outcome field based on recorded errors/warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("lessons=%d sections=%d pages=%d collisions=%d broken_links=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Lessons, r.Sections, r.Pages, len(r.Collisions), len(r.BrokenLinks), dur.Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// Persist writes build-report.json and build-report.txt atomically into root.
// Errors are returned for caller logging but do not change the build outcome.
func (r *BuildReport) Persist(root string) error {
	if r.Outcome == "" {
		r.finish(time.Now())
	}
	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(root, reportJSON), append(jb, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(root, reportText), []byte(r.Summary()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report summary: %w", err)
	}
	return nil
}

// BuildReportSerializable mirrors BuildReport with string errors for JSON output.
type BuildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	BuildID         string                   `json:"build_id"`
	Input           string                   `json:"input"`
	SourceRevision  string                   `json:"source_revision,omitempty"`
	Lessons         int                      `json:"lessons"`
	Sections        int                      `json:"sections"`
	Pages           int                      `json:"pages"`
	Outputs         []OutputRecord           `json:"outputs"`
	Collisions      []site.Collision         `json:"collisions,omitempty"`
	BrokenLinks     []linkcheck.BrokenLink   `json:"broken_links,omitempty"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Outcome         string                   `json:"outcome"`
}

func (r *BuildReport) serializable() *BuildReportSerializable {
	s := &BuildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Input:           r.Input,
		SourceRevision:  r.SourceRevision,
		Lessons:         r.Lessons,
		Sections:        r.Sections,
		Pages:           r.Pages,
		Outputs:         r.Outputs,
		Collisions:      r.Collisions,
		BrokenLinks:     r.BrokenLinks,
		Start:           r.Start,
		End:             r.End,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  r.StageDurations,
		StageErrorKinds: make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:     make(map[string]StageCount, len(r.StageCounts)),
		Outcome:         string(r.Outcome),
	}
	if s.Outputs == nil {
		s.Outputs = []OutputRecord{}
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	return s
}
