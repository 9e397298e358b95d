package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if lbe, ok := As(err); ok {
		return a.exitCodeFromLessonBuilder(lbe)
	}

	return 1
}

// exitCodeFromLessonBuilder maps LessonBuilderError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromLessonBuilder(err *LessonBuilderError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryDocument:
		return 9 // Input document error
	case CategoryRender, CategoryFileSystem:
		return 11 // Build error
	case CategoryRetrofit, CategoryLinks:
		return 3 // Partial success over a batch
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if lbe, ok := As(err); ok {
		return a.formatLessonBuilder(lbe)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatLessonBuilder formats a LessonBuilderError for display.
func (a *CLIErrorAdapter) formatLessonBuilder(err *LessonBuilderError) string {
	if a.verbose {
		return err.Error()
	}

	msg := err.Message
	if detail := contextDetail(err); detail != "" {
		msg += " (" + detail + ")"
	}
	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return msg
	default:
		return fmt.Sprintf("%s: %s", err.Category, msg)
	}
}

// contextKeys lists, per category, the context fields worth showing without --verbose.
var contextKeys = map[ErrorCategory][]string{
	CategoryConfig:     {"path"},
	CategoryValidation: {"field", "reason"},
	CategoryDocument:   {"path", "reason"},
	CategoryRender:     {"page"},
	CategoryFileSystem: {"path"},
	CategoryRetrofit:   {"failed", "total"},
	CategoryLinks:      {"count"},
}

func contextDetail(err *LessonBuilderError) string {
	var parts []string
	for _, k := range contextKeys[err.Category] {
		if v, ok := err.Context[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if lbe, ok := As(err); ok {
		return lbe.Category == CategoryInternal ||
			lbe.Category == CategoryRuntime ||
			lbe.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if lbe, ok := As(err); ok {
		level := a.slogLevelFromSeverity(lbe.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(lbe.Category)),
		}
		for k, v := range lbe.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if lbe.Cause != nil {
			attrs = append(attrs, slog.String("cause", lbe.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, lbe.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts LessonBuilderError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
