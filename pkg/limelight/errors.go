package limelight

import (
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common conditions.
var (
	// ErrNotRunning is returned when an operation requires an active poll loop.
	ErrNotRunning = errors.New("limelight: client not running")

	// ErrSubscriptionClosed is returned when reading from a closed subscription.
	ErrSubscriptionClosed = errors.New("limelight: subscription closed")
)

// TransportError represents a failed HTTP exchange with the camera:
// the request never completed, timed out, or came back non-2xx.
type TransportError struct {
	// Op is the operation being performed ("GET", "POST", "DELETE").
	Op string

	// URL is the full request URL.
	URL string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Err is the underlying network error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("limelight: %s %s: HTTP %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("limelight: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTimeout returns true if the request timed out.
func (e *TransportError) IsTimeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsServerError returns true if the camera answered with a 5xx status.
func (e *TransportError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// SchemaError represents a response body that could not be decoded into
// the expected shape. Absent optional fields never produce a SchemaError;
// only a present value of the wrong type does.
type SchemaError struct {
	// Field is the JSON field that failed to decode, if known.
	Field string

	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("limelight: bad response field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("limelight: bad response body: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid caller-supplied parameter. It is
// returned before any network traffic is attempted.
type ConfigError struct {
	// Param names the offending parameter.
	Param string

	// Reason describes why it was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("limelight: invalid %s: %s", e.Param, e.Reason)
}

// IsTransport returns true if err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsSchema returns true if err is a SchemaError.
func IsSchema(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsConfig returns true if err is a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
