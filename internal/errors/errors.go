package errors

import (
	"errors"
	"fmt"
)

// Exit codes for the bakjob CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid flags, bad job config,
	// missing base archive for the requested mode, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, archiver failure).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrConfigNotFound indicates the job configuration file does not exist
	// or is not readable.
	ErrConfigNotFound = errors.New("job configuration not found")

	// ErrConfigParse indicates the job configuration file is malformed.
	ErrConfigParse = errors.New("job configuration parse error")

	// ErrMissingBaseArchive indicates the requested mode needs a prior full
	// archive and no valid base pointer exists.
	ErrMissingBaseArchive = errors.New("missing base archive")

	// ErrArchiverFailed indicates the external archiver exited non-zero.
	ErrArchiverFailed = errors.New("archiver failed")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI use.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// CodeFor maps an error to the exit code the process should return.
// ExitError codes win; the sentinel taxonomy decides the rest.
func CodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, ErrConfigNotFound),
		errors.Is(err, ErrConfigParse),
		errors.Is(err, ErrMissingBaseArchive):
		return ExitUser
	default:
		return ExitSystem
	}
}
