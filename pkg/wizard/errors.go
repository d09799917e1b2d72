package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not valid for the
	// current step.
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	// ErrUnknownQuestion is returned for ids missing from the catalog.
	ErrUnknownQuestion = errors.New("wizard: unknown question")
	// ErrRequired is returned when a required question resolves to an empty
	// answer.
	ErrRequired = errors.New("wizard: answer required")
	// ErrNotSkippable is returned by Skip on questions that must be answered.
	ErrNotSkippable = errors.New("wizard: question cannot be skipped")
)

// ValidationError reports a format check failure for one answer. Message
// is the text front ends show next to the field.
type ValidationError struct {
	QuestionID int
	Field      string
	Value      string
	Err        error
}

func (e *ValidationError) Error() string {
	if e == nil || e.Err == nil {
		return "wizard: validation failed"
	}
	return fmt.Sprintf("wizard: %s: %v", e.Field, e.Err)
}

// Unwrap exposes the validator error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message returns the user-facing validator message.
func (e *ValidationError) Message() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
