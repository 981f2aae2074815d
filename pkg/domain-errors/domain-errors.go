package domainerrors

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_failed"
	CodeInternal           Code = "internal_error"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"

	// CodePrecondition marks a locally detected missing prerequisite
	// (no wallet, no identity, no signer). No external call was attempted.
	CodePrecondition Code = "precondition_failed"
	// CodeExternal marks a failure reported by the vault contract, the
	// wallet, or the network between them.
	CodeExternal Code = "external_failure"
	// CodeUnavailable marks a dependency that is refusing calls (open breaker).
	CodeUnavailable Code = "unavailable"
)

// MaxMessageLength bounds user-facing failure descriptions.
const MaxMessageLength = 160

// DefaultFailureMessage is shown when a failure carries no usable message.
const DefaultFailureMessage = "Something went wrong. Please try again."

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		// Preserve the original domain code, update message
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Friendly reduces err to a bounded, human-readable message. The trimmed
// error text is used when present, otherwise fallback. Messages longer than
// MaxMessageLength runes are cut to MaxMessageLength-3 runes plus an ellipsis.
func Friendly(err error, fallback string) string {
	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = fallback
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		runes := []rune(msg)
		return string(runes[:MaxMessageLength-3]) + "…"
	}
	return msg
}

// External wraps a failure reported across the vault boundary. The message
// is bounded with Friendly so it can be shown to the user as-is.
func External(err error) error {
	return &Error{Code: CodeExternal, Message: Friendly(err, DefaultFailureMessage), Err: err}
}
