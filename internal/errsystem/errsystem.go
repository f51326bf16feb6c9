// Package errsystem gives every user-facing failure a stable code, an
// optional human message, and a uniform way to print it and exit. It is the
// boundary between the glob/compose/emit/changeset packages' plain Go
// errors and the terminal.
package errsystem

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

type errorType struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errSystem struct {
	id         string
	code       errorType
	message    string
	err        error
	attributes map[string]any
}

type option func(*errSystem)

// New creates a new error carrying code as its catalog entry and err as the
// underlying cause.
func New(code errorType, err error, opts ...option) *errSystem {
	// a context-cancellation is a user interruption (Ctrl+C during a long
	// git diff), not a reportable failure
	if errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
	res := &errSystem{
		id:         uuid.New().String(),
		err:        err,
		code:       code,
		attributes: make(map[string]any),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (e *errSystem) Error() string {
	return fmt.Sprintf("%s: %s", e.code.Code, e.err.Error())
}

func (e *errSystem) Unwrap() error {
	return e.err
}

// WithUserMessage adds a user-friendly message to the error.
func WithUserMessage(message string, args ...any) option {
	return func(e *errSystem) {
		e.message = fmt.Sprintf(message, args...)
	}
}

// WithAttributes adds additional metadata attributes to the error.
func WithAttributes(attributes map[string]any) option {
	return func(e *errSystem) {
		for k, v := range attributes {
			e.attributes[k] = v
		}
	}
}

// WithContextMessage adds some internal context that can help with debugging.
func WithContextMessage(message string) option {
	return func(e *errSystem) {
		e.attributes["message"] = message
	}
}
