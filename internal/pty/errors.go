package pty

import (
	"errors"
	"fmt"
)

// Kind is a stable tag for programmatic error handling by callers.
type Kind string

const (
	KindResourceLimit   Kind = "resource_limit"
	KindValidation      Kind = "validation_error"
	KindSystem          Kind = "system_error"
	KindSpawn           Kind = "spawn_error"
	KindIO              Kind = "io_error"
	KindResize          Kind = "resize_error"
	KindSessionNotFound Kind = "session_not_found"
	KindLock            Kind = "lock_error"
)

// Error carries a kind tag and a human-readable message. All manager
// operations return *Error; no panic crosses the API boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by kind, so callers can compare against sentinel kinds
// with errors.Is without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind tag from an error chain. Unrecognized errors
// report KindSystem.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindSystem
}
