// Package errors provides a lightweight structured error type (LessonBuilderError)
// for category-based classification and exit code mapping in the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a LessonBuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryDocument   ErrorCategory = "document"

	// Build and processing errors
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRetrofit   ErrorCategory = "retrofit"
	CategoryLinks      ErrorCategory = "links"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// LessonBuilderError is a structured error with category, severity, and context
type LessonBuilderError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for LessonBuilderError
type ContextFields map[string]any

// Error implements the error interface
func (e *LessonBuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *LessonBuilderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *LessonBuilderError) WithContext(key string, value any) *LessonBuilderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new LessonBuilderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *LessonBuilderError {
	return &LessonBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new LessonBuilderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *LessonBuilderError {
	return &LessonBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first LessonBuilderError in err's chain.
func As(err error) (*LessonBuilderError, bool) {
	var lbe *LessonBuilderError
	if stderrors.As(err, &lbe) {
		return lbe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if lbe, ok := As(err); ok {
		return lbe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a LessonBuilderError
func GetCategory(err error) ErrorCategory {
	if lbe, ok := As(err); ok {
		return lbe.Category
	}
	return CategoryInternal
}
