package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the visitor could not produce an
	// acceptable submission within the configured number of attempts.
	ErrTooManyAttempts = errors.New("tui: too many attempts")
	// ErrControllerNil is returned when no contact controller was supplied.
	ErrControllerNil = errors.New("tui: contact controller is nil")
)
