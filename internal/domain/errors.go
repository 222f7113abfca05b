package domain

import "fmt"

// ValidationError is an operator input that cannot be resolved into a selection.
// It aborts the run before execution; the report is still sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PreconditionError is a missing startup resource (test directory, environment profile).
// The process stops without sending a report.
type PreconditionError struct {
	Msg string
	Err error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}
