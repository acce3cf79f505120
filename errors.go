package lumen

import (
	"errors"
	"fmt"

	"github.com/lumabank/lumen/session"
)

// ErrorKind discriminates the failure modes the API client can surface.
// Callers are expected to match on kind, not on message text.
type ErrorKind string

const (
	// ErrorKindTransport indicates a network-level failure.
	ErrorKindTransport ErrorKind = "Transport"
	// ErrorKindProtocol indicates an unexpected HTTP status code.
	ErrorKindProtocol ErrorKind = "Protocol"
	// ErrorKindMalformedResponse indicates a success status whose body was
	// missing required fields.
	ErrorKindMalformedResponse ErrorKind = "MalformedResponse"
	// ErrorKindAuthenticationState indicates no valid access token was
	// obtainable; the session has been cleared and the user must log in
	// again.
	ErrorKindAuthenticationState ErrorKind = "AuthenticationState"
	// ErrorKindConfiguration indicates the client was misconfigured or
	// missing required credentials.
	ErrorKindConfiguration ErrorKind = "Configuration"
)

// ClientError is the one error type the API client returns. Every failure
// detected inside the client, including session failures raised while
// preparing a request, is normalized into a ClientError carrying the
// original cause.
type ClientError struct {
	Kind   ErrorKind
	Reason string
	cause  error
}

func newClientError(kind ErrorKind, reason string, cause error) *ClientError {
	return &ClientError{
		Kind:   kind,
		Reason: reason,
		cause:  cause,
	}
}

// newClientErrorFromSession wraps a session manager failure, preserving its
// kind so callers can still detect, e.g., the need to re-authenticate.
func newClientErrorFromSession(reason string, err error) *ClientError {
	kind := ErrorKindAuthenticationState
	var sessionErr *session.Error
	if errors.As(err, &sessionErr) {
		switch sessionErr.Kind {
		case session.ErrorKindTransport:
			kind = ErrorKindTransport
		case session.ErrorKindProtocol:
			kind = ErrorKindProtocol
		case session.ErrorKindMalformedResponse:
			kind = ErrorKindMalformedResponse
		case session.ErrorKindConfiguration:
			kind = ErrorKindConfiguration
		}
	}
	return newClientError(kind, reason, err)
}

func (e *ClientError) Error() string {
	if e.cause == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.cause)
}

// Unwrap supports errors.Is/errors.As traversal.
func (e *ClientError) Unwrap() error {
	return e.cause
}

// Cause supports github.com/pkg/errors style cause extraction.
func (e *ClientError) Cause() error {
	return e.cause
}

// errorKind returns the kind of the ClientError err is or wraps, so that
// re-wrapping with added context preserves the original classification.
func errorKind(err error) ErrorKind {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind
	}
	return ErrorKindTransport
}

// IsErrorKind returns true if err is, or wraps, a ClientError of the given
// kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Kind == kind
}
