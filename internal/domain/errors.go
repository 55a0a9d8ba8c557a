package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every concrete error type below matches exactly one.
var (
	ErrValidation        = errors.New("validation failed")
	ErrOutOfRange        = errors.New("value out of range")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDuplicateResponse = errors.New("duplicate response")
)

// ValidationError reports bad input shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// OutOfRangeError reports a numeric value outside its closed bounds.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g (got %g)", e.Field, e.Min, e.Max, e.Value)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// NotFoundError reports an unknown id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidStateError reports an operation that the entity's lifecycle state forbids.
type InvalidStateError struct {
	Entity string
	ID     string
	State  string
	Op     string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %q in state %s", e.Op, e.Entity, e.ID, e.State)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// InvalidTransitionError reports an illegal lifecycle transition.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s cannot advance from terminal state %s", e.Entity, e.From)
	}
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// DuplicateResponseError reports a second response by the same participant.
type DuplicateResponseError struct {
	SurveyID      string
	ParticipantID string
}

func (e *DuplicateResponseError) Error() string {
	return fmt.Sprintf("participant %q already responded to survey %q", e.ParticipantID, e.SurveyID)
}

func (e *DuplicateResponseError) Is(target error) bool { return target == ErrDuplicateResponse }

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
