package api

import (
	"errors"
	"fmt"
)

// Local precondition failures. No request is sent when one of these is returned.
var (
	ErrFileNotFound = errors.New("file not found")
	ErrEmptyFile    = errors.New("file is empty")
	ErrUnreadable   = errors.New("file is not readable")
	ErrEmptyText    = errors.New("text is empty")
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ErrorKind classifies an UploadError
type ErrorKind int

const (
	// KindPrecondition is a local failure detected before any network call
	KindPrecondition ErrorKind = iota
	// KindTransport covers connectivity, timeouts and body read failures
	KindTransport
	// KindStatus is a non-2xx reply from the backend
	KindStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	}
	return "unknown"
}

// UploadError is the failure side of a Result.
type UploadError struct {
	Kind       ErrorKind
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *UploadError) Error() string {
	return e.Message()
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *UploadError) Unwrap() error {
	return e.Cause
}

// Message renders the user-facing text for the failure
func (e *UploadError) Message() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("server error: %d", e.StatusCode)
	case KindTransport:
		return fmt.Sprintf("send error: %v", e.Cause)
	default:
		if e.Cause == nil {
			return "invalid input"
		}
		return e.Cause.Error()
	}
}

func preconditionError(err error) *UploadError {
	return &UploadError{Kind: KindPrecondition, Cause: err}
}

func transportError(err error) *UploadError {
	return &UploadError{Kind: KindTransport, Cause: err}
}

func statusError(code int, body []byte) *UploadError {
	return &UploadError{
		Kind:       KindStatus,
		StatusCode: code,
		Cause:      &HTTPError{StatusCode: code, Message: string(body)},
	}
}
