// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders export summaries and maps errors to exit codes.
package output

import "errors"

// Exit codes:
// 0 = success
// 1 = user error (missing output directory, unknown tag, bad flag)
// 2 = system error (database or file I/O failure)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError wraps cause as a user error (exit code 1). The message is
// taken from cause.
func NewUserError(cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: cause.Error(), Cause: cause}
}

// NewSystemError wraps cause as a system error (exit code 2).
func NewSystemError(message string, cause error) *ExitError {
	msg := message
	if cause != nil {
		msg = message + ": " + cause.Error()
	}
	return &ExitError{Code: ExitSystemError, Message: msg, Cause: cause}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// *ExitError map to ExitUserError, matching cobra's flag and argument
// errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
