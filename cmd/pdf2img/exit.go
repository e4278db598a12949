package main

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess        = 0
	ExitFailure        = 1 // invalid input, unreadable PDF, bad options
	ExitPartialFailure = 2 // --strict and at least one page failed
)

// ExitCodeError carries the exit code for an error that has already been
// reported to the user.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
