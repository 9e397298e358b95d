package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyLesson     = "lesson"
	KeySection    = "section"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutcome    = "outcome"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Lesson(seq int) slog.Attr         { return slog.Int(KeyLesson, seq) }
func Section(id string) slog.Attr      { return slog.String(KeySection, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(name string) slog.Attr       { return slog.String(KeyFile, name) }
func Outcome(o string) slog.Attr       { return slog.String(KeyOutcome, o) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
