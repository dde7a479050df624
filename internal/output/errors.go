package output

import (
	"errors"
	"fmt"
)

// CLIError represents a user-facing error with an optional suggested fix.
type CLIError struct {
	Message string // what went wrong
	Cause   error  // underlying error (optional)
	Fix     string // suggested fix (optional)
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewErrorWithFix creates a new CLIError with a message and suggested fix.
func NewErrorWithFix(message, fix string) *CLIError {
	return &CLIError{Message: message, Fix: fix}
}

// WrapErrorWithFix wraps an existing error with a message and suggested fix.
func WrapErrorWithFix(err error, message, fix string) *CLIError {
	return &CLIError{Message: message, Cause: err, Fix: fix}
}

// PrintError prints a formatted error to stderr with an optional fix
// suggestion. The CLIError may be wrapped anywhere in err's chain.
// In JSON mode, it outputs a JSON error instead.
func PrintError(err error) {
	if err == nil {
		return
	}
	if JSONMode {
		JSONError(err)
		return
	}

	Error(err.Error())
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Fix != "" {
		Info(mark("💡", "Fix:") + " " + cliErr.Fix)
	}
}
