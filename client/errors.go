package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Error kinds. Every error returned by Fetch is an *Error whose Kind is one of these.
var (
	// ErrTimeout means the request did not complete within the client timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrTransport means the request failed at the network level, or was
	// cancelled by the caller's context.
	ErrTransport = errors.New("transport error")

	// ErrDecode means the response body was not valid JSON.
	ErrDecode = errors.New("invalid JSON response")

	// ErrRequest means the request could not be built, for example because
	// the base URL is malformed or the GraphQL variables cannot be encoded.
	ErrRequest = errors.New("invalid request")
)

// Error wraps a Fetch failure with its kind and the request it belongs to.
type Error struct {
	Kind   error
	Method string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil || errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Method, e.URL, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// transportError classifies a failure of the round trip or the body read.
// Only expiry of the client's own deadline counts as a timeout.
func transportError(ctx context.Context, method, rawURL string, err error) *Error {
	kind := ErrTransport
	if errors.Is(context.Cause(ctx), ErrTimeout) {
		kind = ErrTimeout
	}
	// *url.Error repeats the method and URL already carried by Error.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &Error{Kind: kind, Method: method, URL: rawURL, Err: err}
}
