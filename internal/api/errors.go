package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when no access token is configured.
// No network call is issued in that case.
var ErrUnauthenticated = errors.New("not authenticated: no access token configured")

// ErrCancelled is returned when a request was aborted through its context,
// either by the caller or by Client.Cancel.
var ErrCancelled = errors.New("request cancelled")

// DomainError is a non-2xx answer from the API. The message is the raw
// response body, which Gmail fills with a server-side error description.
type DomainError struct {
	StatusCode int
	Message    string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level fault: DNS resolution, TLS handshake,
// connection or timeout problems. It wraps the underlying error.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a response whose structure was unusable,
// e.g. a body that is not the JSON document an endpoint is defined to
// return. Missing individual fields never produce this error; they decode
// to their zero values instead.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
