package errors

import (
	"fmt"
	"net/http"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures parameter validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError represents a network-level failure reaching the vCenter
// endpoint: DNS, TLS, connection refused, or a timed-out request. It is fatal
// for the whole reconciliation; no retry is attempted.
type TransportError struct {
	URL string
	Err error
}

// NewTransportError constructs a TransportError.
func NewTransportError(url string, err error) error {
	return &TransportError{URL: url, Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying network error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is checks if this error matches another TransportError.
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// ProbeError represents an unexpected status from the existence probe. Any
// HEAD response other than 200 or 404 aborts the run before state dispatch.
type ProbeError struct {
	URL     string
	Status  int
	Reason  string
	Headers http.Header
}

// NewProbeError constructs a ProbeError carrying the response metadata.
func NewProbeError(url string, status int, reason string, headers http.Header) error {
	return &ProbeError{URL: url, Status: status, Reason: reason, Headers: headers}
}

func (e *ProbeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("probe error: %s: unexpected status %d (%s)", e.URL, e.Status, e.Reason)
}

// Is checks if this error matches another ProbeError.
func (e *ProbeError) Is(target error) bool {
	_, ok := target.(*ProbeError)
	return ok
}

// NotFoundError is returned when state=file is requested for an absent path.
// The caller asked to inspect a file that does not exist; this is fatal but
// user-correctable.
type NotFoundError struct {
	Path string
}

// NewNotFoundError constructs a NotFoundError for the given datastore path.
func NewNotFoundError(path string) error {
	return &NotFoundError{Path: path}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("file '%s' is absent, cannot continue", e.Path)
}

// Is checks if this error matches another NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// MutationError represents a failed corrective action: a delete or mkdir the
// management API rejected, or a touch PUT that returned anything but 201.
type MutationError struct {
	Op     string
	Target string
	Status int
	Err    error
}

// NewMutationError constructs a MutationError for the given operation.
func NewMutationError(op, target string, status int, err error) error {
	return &MutationError{Op: op, Target: target, Status: status, Err: err}
}

func (e *MutationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s failed for %s: status %d: %v", e.Op, e.Target, e.Status, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *MutationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is checks if this error matches another MutationError.
func (e *MutationError) Is(target error) bool {
	_, ok := target.(*MutationError)
	return ok
}

// MalformedResponseError represents a 200 probe response whose metadata could
// not be interpreted, such as a missing content-length header.
type MalformedResponseError struct {
	URL    string
	Reason string
}

// NewMalformedResponseError constructs a MalformedResponseError.
func NewMalformedResponseError(url, reason string) error {
	return &MalformedResponseError{URL: url, Reason: reason}
}

func (e *MalformedResponseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}

// Is checks if this error matches another MalformedResponseError.
func (e *MalformedResponseError) Is(target error) bool {
	_, ok := target.(*MalformedResponseError)
	return ok
}
