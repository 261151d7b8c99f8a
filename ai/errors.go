package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ConfigurationError reports an invalid or incomplete provider
// configuration. It is always fatal: retrying cannot fix a missing
// credential.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ai config: %s: %s", e.Field, e.Reason)
}

// ServiceError wraps a failure from the hosted AI service and records
// whether retrying the same request could succeed.
type ServiceError struct {
	Op         string // "generate" or "embed"
	StatusCode int    // HTTP status when known, zero otherwise
	Retryable  bool
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ai %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a ServiceError marked retryable.
// Any other error, including a ConfigurationError, is fatal.
func IsRetryable(err error) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Retryable
}

// WrapGenerateError classifies a raw client error from blurb
// generation into a ServiceError.
func WrapGenerateError(err error) error {
	return classifyError("generate", err)
}

// WrapEmbedError classifies a raw client error from embedding into a
// ServiceError.
func WrapEmbedError(err error) error {
	return classifyError("embed", err)
}

// classifyError wraps a raw client error into a ServiceError.
// Rate limits, timeouts, and server-side failures are retryable;
// authentication failures and malformed requests are not.
func classifyError(op string, err error) *ServiceError {
	se := &ServiceError{Op: op, Err: err}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		se.Retryable = true
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		se.Retryable = true
		return se
	}

	if code, ok := statusCode(err); ok {
		se.StatusCode = code
		se.Retryable = code == http.StatusTooManyRequests || code >= 500
	}
	return se
}
