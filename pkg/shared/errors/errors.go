package errors

import (
	"fmt"
	"strings"
)

// Custom error type for rejected option values.
type InvalidOptionError struct {
	Option  string
	Value   string
	Allowed []string
}

// Implement the error interface for InvalidOptionError.
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s %q, allowed values: %s", e.Option, e.Value, strings.Join(e.Allowed, ", "))
}

// Constructor for InvalidOptionError.
func NewInvalidOptionError(option, value string, allowed ...string) error {
	return &InvalidOptionError{
		Option:  option,
		Value:   value,
		Allowed: allowed,
	}
}

// StageError marks which pipeline stage a run failed in.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface, prefixing the wrapped error with the stage name.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError instance for the named stage.
func NewStageError(stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}
