package matching

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrModelUnavailable = errors.New("model unavailable")
)

// InvalidRequestError is returned before any scoring starts when the ranking
// inputs are missing or empty.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

func (e *InvalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

// ModelUnavailableError reports that a model the operation depends on was
// not loaded at startup.
type ModelUnavailableError struct {
	Model string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("%s is not available", e.Model)
}

func (e *ModelUnavailableError) Unwrap() error {
	return ErrModelUnavailable
}

// ComputationError wraps an unexpected failure inside a scoring step.
type ComputationError struct {
	Step      string
	Candidate string
	Err       error
}

func (e *ComputationError) Error() string {
	if e.Candidate != "" {
		return fmt.Sprintf("%s failed for candidate %q: %v", e.Step, e.Candidate, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
