package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoController is returned when Run is called without a form.
	ErrNoController = errors.New("tui: form controller is nil")
	// ErrTooManyAttempts is returned when a field is still invalid after the
	// configured number of prompts.
	ErrTooManyAttempts = errors.New("tui: too many invalid answers")
	// ErrUnsupportedFormat is returned for unknown output formats.
	ErrUnsupportedFormat = errors.New("tui: unsupported output format")
)
