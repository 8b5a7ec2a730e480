package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound signals an operation against a field id missing from
	// the form.
	ErrFieldNotFound = errors.New("editor: field not found")
	// ErrStepOutOfRange signals a step index outside the step list.
	ErrStepOutOfRange = errors.New("editor: step index out of range")
	// ErrIndexOutOfRange signals a field position outside the field list.
	ErrIndexOutOfRange = errors.New("editor: field index out of range")
	// ErrNotMultiStep signals a step operation against a single-step form.
	ErrNotMultiStep = errors.New("editor: form is not multi-step")
)

// IntegrityError reports a rejected mutation. The wrapped error carries the
// violated invariant; Op names the operation that rejected it.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("editor: %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func reject(op string, err error) *IntegrityError {
	return &IntegrityError{Op: op, Err: err}
}
