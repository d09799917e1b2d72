package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoTemplates is returned when the runner has nothing to render.
	ErrNoTemplates = errors.New("tui: template catalog is required")
)
