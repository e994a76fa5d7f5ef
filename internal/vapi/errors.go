package vapi

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMethod is returned for verbs other than GET, POST, PATCH and DELETE.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// ErrUnexpectedResponse is returned when a 2xx body does not have the shape
// the operation expects (e.g. an object where a list was expected).
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// Kind classifies a failed request. It is diagnostic only.
type Kind int

const (
	// KindTransport covers DNS, connection, timeout and decode failures.
	KindTransport Kind = iota + 1
	// KindRemote is a response with a status other than 200, 201 or 204.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// RequestError describes why a request produced no result.
type RequestError struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Kind == KindRemote {
		return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
