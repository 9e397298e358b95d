package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *LessonBuilderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *LessonBuilderError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *LessonBuilderError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Document errors

func DocumentUnreadable(path string, cause error) *LessonBuilderError {
	return Wrap(cause, CategoryDocument, SeverityFatal, "lesson document could not be read").
		WithContext("path", path)
}

func DocumentMalformed(reason string, cause error) *LessonBuilderError {
	return Wrap(cause, CategoryDocument, SeverityFatal, "lesson document malformed").
		WithContext("reason", reason)
}

// Build pipeline errors

func RenderFailed(page string, cause error) *LessonBuilderError {
	return Wrap(cause, CategoryRender, SeverityFatal, "page rendering failed").
		WithContext("page", page)
}

func WriteFailed(path string, cause error) *LessonBuilderError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output write failed").
		WithContext("path", path)
}

// Retrofit errors

func RetrofitFailed(failed int, total int) *LessonBuilderError {
	return New(CategoryRetrofit, SeverityError, "retrofit patch failed for some pages").
		WithContext("failed", failed).
		WithContext("total", total)
}

// Link verification errors

func BrokenLinks(count int) *LessonBuilderError {
	return New(CategoryLinks, SeverityError, "broken links detected").
		WithContext("count", count)
}

// Runtime errors

func WatchFailed(cause error) *LessonBuilderError {
	return Wrap(cause, CategoryRuntime, SeverityFatal, "file watcher failed")
}

// Internal errors

func InternalError(message string, cause error) *LessonBuilderError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
