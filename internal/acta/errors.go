package acta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	dErrors "actavc/pkg/domain-errors"
)

// APIError is a non-2xx response from the vault API. Error returns the
// message reported by the API so it can be shown to users as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("vault API returned %d", e.Status)
}

// Retryable reports whether the failure points at the API rather than the request.
func (e *APIError) Retryable() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// countsAsFailure decides whether err should move the circuit breaker.
// Rejections of a well-formed request (bad signature, unknown vault) are the
// caller's problem and do not indicate an unhealthy API. Neither does a call
// abandoned by its caller.
func countsAsFailure(err error) bool {
	if err == nil || abandoned(err) {
		return false
	}
	var signErr *SignError
	if errors.As(err, &signErr) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}

// abandoned reports whether err comes from the caller giving up: a client
// disconnect or the request deadline.
func abandoned(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// SignError is a failure reported by the wallet while signing, typically the
// user declining the request. It keeps the wallet's message.
type SignError struct {
	Err error
}

func (e *SignError) Error() string { return e.Err.Error() }
func (e *SignError) Unwrap() error { return e.Err }

// DomainError maps a client failure onto a domain error. Unavailable and
// precondition errors pass through; anything else becomes CodeExternal with
// a bounded, user-facing message.
func DomainError(err error) error {
	if err == nil {
		return nil
	}
	if dErrors.HasCode(err, dErrors.CodeUnavailable) || dErrors.HasCode(err, dErrors.CodePrecondition) {
		return err
	}
	return dErrors.External(err)
}
