package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("order status cannot move backwards or leave a final state")
	ErrStatusChanged      = errors.New("order status changed meanwhile, reload and retry")
	ErrNotCancellable     = errors.New("order cannot be cancelled as it is not in 'Pending' status")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError reports user input that was rejected before any write.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Add(field string) {
	e.Fields = append(e.Fields, field)
}

// OrNil returns nil when no field was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// SubmissionError wraps a failed backend write. Nothing was committed.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return "backend write failed: " + e.Err.Error() }
func (e *SubmissionError) Unwrap() error { return e.Err }

// FetchError wraps a failed backend read.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "backend read failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }
