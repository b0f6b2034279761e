package rest

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindNone is the kind of a nil error.
	KindNone ErrorKind = iota
	// KindRequestFailed means the API answered with an unacceptable status.
	KindRequestFailed
	// KindTransport means no usable response arrived (network, DNS, cancellation).
	KindTransport
	// KindDecode means the response body was not the expected JSON.
	KindDecode
	// KindUnknown is anything not produced by this package.
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRequestFailed:
		return "request_failed"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestFailedError is returned when the API responds with a non-2xx status.
type RequestFailedError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

// TransportError wraps a failure to obtain any response, including a request
// that could not be built or encoded and so was never sent.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a malformed response body.
type DecodeError struct {
	Method string
	Path   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decode response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// KindOf classifies err. Wrapped errors are inspected with errors.As.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		reqErr    *RequestFailedError
		netErr    *TransportError
		decodeErr *DecodeError
	)
	switch {
	case errors.As(err, &reqErr):
		return KindRequestFailed
	case errors.As(err, &netErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindUnknown
	}
}

// StatusCode returns the HTTP status carried by a RequestFailedError, or 0.
func StatusCode(err error) int {
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
