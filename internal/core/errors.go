package core

import "errors"

// Kind classifies a domain failure. The HTTP layer maps kinds to status
// codes; nothing below the web adapter knows about HTTP.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInvalidState Kind = "INVALID_STATE"
	KindInvalidInput Kind = "INVALID_INPUT"
	KindUpstream     Kind = "UPSTREAM_ERROR"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error is a tagged domain error. Message is safe to show to callers;
// Err (if set) carries internal detail for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing company, client, or quote.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict reports a uniqueness violation (e.g. duplicate quote number).
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// InvalidState reports an operation applied to a quote in the wrong state.
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }

// InvalidInput reports malformed or missing caller input.
func InvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Message: msg} }

// Upstream reports a failure from the text generation provider.
func Upstream(msg string) *Error { return &Error{Kind: KindUpstream, Message: msg} }

// Internal wraps an unexpected error behind a generic caller-facing message.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-safe message for err. Untagged errors
// collapse to a generic message so internal detail never leaks.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return de.Message
	}
	return "internal server error"
}
