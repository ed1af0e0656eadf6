package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the user chooses not to submit or not to
	// retry after a failed save.
	ErrDeclined = errors.New("tui: submission declined")
	// ErrInvalidChoice is returned when a driver reports a selection outside
	// the offered options.
	ErrInvalidChoice = errors.New("tui: invalid choice")
)
