package output

import (
	"errors"
	"fmt"
)

// Process exit codes.
// 0 = Success
// 1 = User error (bad args, unknown marker, file not found)
// 2 = System error (read, write or watch failure)
// 3 = Conflict (file already exists)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, invalid settings, missing files.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewUserErrorf formats a user error. An operand of a %w verb becomes the
// cause, so errors.Is still finds sentinels such as week.ErrUndated.
func NewUserErrorf(format string, args ...any) *ExitError {
	err := fmt.Errorf(format, args...)
	return &ExitError{
		Code:    ExitUserError,
		Message: err.Error(),
		Cause:   errors.Unwrap(err),
	}
}

// AsUserError returns err as a user error. An err that already carries an
// exit code keeps it. AsUserError(nil) is nil.
func AsUserError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{
		Code:    ExitUserError,
		Message: err.Error(),
		Cause:   err,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewConflictError creates an error for conflict situations (exit code 3).
// Use for: refusing to overwrite an existing file.
func NewConflictError(message string) *ExitError {
	return &ExitError{
		Code:    ExitConflict,
		Message: message,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
