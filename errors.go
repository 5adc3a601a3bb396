package policypdf

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload is wrapped by every validation failure. Callers map it
// to a client error; retrying the same payload cannot succeed.
var ErrInvalidPayload = errors.New("policypdf: invalid payload")

// FieldError reports a payload field that failed validation. It is returned
// before any page is drawn.
type FieldError struct {
	Field  string // JSON name of the field, e.g. "policyText"
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("policypdf: invalid payload: %s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidPayload
}

// RenderError reports a failure of the drawing library during a render.
// Renders are not retried internally.
type RenderError struct {
	Op  string // stage of the render, e.g. "draw", "output"
	Err error  // underlying error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("policypdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("policypdf.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}
