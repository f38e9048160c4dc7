package errors

import "fmt"

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"       // NotAvailable: language/project/sentence/book/phrase lookup failed
	CodeInvalidArg = "INVALID_ARGUMENT" // TypeError: wrong entity shape, unsupported export format, out-of-range sentenceId
	CodeExternal   = "EXTERNAL_ERROR"
	CodeConflict   = "CONFLICT"         // Concurrent draft write lost the race; caller should retry
	CodeDependency = "DEPENDENCY_ERROR" // Foreign key constraint violation
	CodeMalformed  = "MALFORMED_INPUT"  // Invalid row during bulk ingest; skipped, not fatal
)

// IsNotFound reports whether err (or something it wraps) is a NotAvailable-class AppError.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsConflict reports whether err (or something it wraps) is a Conflict-class AppError,
// the signal callers should retry on per the optimistic-concurrency model.
func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

// IsMalformed reports whether err (or something it wraps) is a
// Malformed-class AppError, the signal ingest callers skip-and-continue on.
func IsMalformed(err error) bool {
	return hasCode(err, CodeMalformed)
}

func hasCode(err error, code string) bool {
	for err != nil {
		if ae, ok := err.(*AppError); ok {
			if ae.Code == code {
				return true
			}
			err = ae.Cause
			continue
		}
		break
	}
	return false
}
