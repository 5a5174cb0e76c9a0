// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

// Exit codes beyond the generic 1, so scripts can tell a missing or broken
// project file apart from an unreachable daemon.
const (
	// ExitCodeNoProject means no project file was found or it did not parse.
	ExitCodeNoProject = 2
	// ExitCodeNoDaemon means the LXD daemon could not be reached.
	ExitCodeNoDaemon = 3
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
