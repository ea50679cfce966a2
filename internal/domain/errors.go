package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCompletion means the event stream carried no usable completion frame.
	ErrNoCompletion = errors.New("no completion found in stream")
	// ErrNoCandidates means discovery handed an empty list to selection.
	ErrNoCandidates = errors.New("no candidates to select from")
)

// RemoteError covers non-success HTTP statuses and transport failures.
type RemoteError struct {
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// DecodeError reports an event stream or structured payload that could not be decoded.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %v", e.Reason, e.Err)
	}
	return "decode " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError marks a parsed payload that lacks a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// FatalInputError is raised when a stage receives input it cannot recover from.
type FatalInputError struct {
	Stage string
	Err   error
}

func (e *FatalInputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalInputError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err belongs to the class of failures a stage
// absorbs through its fallback rule.
func IsRecoverable(err error) bool {
	var (
		remote     *RemoteError
		decode     *DecodeError
		validation *ValidationError
	)
	return errors.As(err, &remote) || errors.As(err, &decode) || errors.As(err, &validation)
}
