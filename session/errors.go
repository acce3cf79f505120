package session

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure modes the session manager can surface.
// Callers are expected to match on kind, not on message text.
type ErrorKind string

const (
	// ErrorKindTransport indicates a network-level failure talking to the
	// authentication endpoints.
	ErrorKindTransport ErrorKind = "Transport"
	// ErrorKindProtocol indicates an unexpected HTTP status from the
	// authentication endpoints.
	ErrorKindProtocol ErrorKind = "Protocol"
	// ErrorKindMalformedResponse indicates a success status whose body was
	// missing required fields.
	ErrorKindMalformedResponse ErrorKind = "MalformedResponse"
	// ErrorKindAuthenticationState indicates that no valid access token is
	// obtainable, even after a refresh attempt. Tokens have been cleared and
	// the user must log in again.
	ErrorKindAuthenticationState ErrorKind = "AuthenticationState"
	// ErrorKindConfiguration indicates the manager was asked to do something
	// it lacks the credentials for, e.g. refreshing with no refresh token.
	ErrorKindConfiguration ErrorKind = "Configuration"
)

// Error is the one error type the session manager returns. Every failure
// detected inside the manager is normalized into an Error carrying the
// original cause.
type Error struct {
	Kind   ErrorKind
	Reason string
	cause  error
}

func newError(kind ErrorKind, reason string, cause error) *Error {
	return &Error{
		Kind:   kind,
		Reason: reason,
		cause:  cause,
	}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.cause)
}

// Unwrap supports errors.Is/errors.As traversal.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause supports github.com/pkg/errors style cause extraction.
func (e *Error) Cause() error {
	return e.cause
}

// IsErrorKind returns true if err is, or wraps, a session Error of the given
// kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	var sessionErr *Error
	return errors.As(err, &sessionErr) && sessionErr.Kind == kind
}
