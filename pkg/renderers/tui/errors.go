package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrRequired is returned by validators when a required field is empty.
	ErrRequired = errors.New("tui: value is required")
)
