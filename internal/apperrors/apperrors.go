package apperrors

import (
	"errors"
	"fmt"
)

// Failure causes carried by UpstreamError.
const (
	CauseNetwork   = "network"
	CauseMalformed = "malformed"
)

// ErrStoreUnavailable is returned when the document store is not configured
// or not reachable. Handlers map it to 503.
var ErrStoreUnavailable = errors.New("document store is not available")

// UpstreamError reports a failure talking to the Caixa results API.
type UpstreamError struct {
	Cause string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s error: %v", e.Cause, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsUpstream reports whether err is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// ValidationError reports invalid caller input. Handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SerializationError reports a cached payload holding a value the JSON
// encoder cannot represent even after store-native types were rewritten.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("payload is not JSON serializable: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
