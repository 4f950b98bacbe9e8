// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeProviderKeyMissing    ErrorCode = "PROVIDER_KEY_MISSING"
	ErrCodeProviderRequestFailed ErrorCode = "PROVIDER_REQUEST_FAILED"
	ErrCodeProviderTimeout       ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeEmptyReport           ErrorCode = "EMPTY_REPORT"

	ErrCodeSubmitTimeout   ErrorCode = "SUBMIT_TIMEOUT"
	ErrCodeTransportFailed ErrorCode = "TRANSPORT_FAILED"

	ErrCodeWebhookParseFailed  ErrorCode = "WEBHOOK_PARSE_FAILED"
	ErrCodeArchiveInsertFailed ErrorCode = "ARCHIVE_INSERT_FAILED"
	ErrCodeDeliveryFailed      ErrorCode = "DELIVERY_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewProviderKeyMissingError marks the fixed "server configuration" failure.
// Nothing can be retried until an operator supplies credentials.
func NewProviderKeyMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderKeyMissing,
		Message:   "Server Configuration Error: API Key missing.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderRequestFailedError wraps a provider transport or API failure.
func NewProviderRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderRequestFailed,
		Message:   "AI Generation Failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError marks a provider call that exceeded its deadline.
func NewProviderTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   "Report generation timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyReportError marks a success response carrying no usable text.
// Treated identically to a transport error by callers.
func NewEmptyReportError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyReport,
		Message:   "AI returned success but no report content.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmitTimeoutError marks a submission whose guard timeout fired before
// any response bytes arrived.
func NewSubmitTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmitTimeout,
		Message:   "The analysis took too long to respond. Please try again.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportFailedError wraps a network or non-2xx failure with the
// underlying message where available.
func NewTransportFailedError(details string) *StandardError {
	if details == "" {
		details = "Connection Failed"
	}
	return &StandardError{
		Code:      ErrCodeTransportFailed,
		Message:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebhookParseFailedError marks an intake payload that could not be
// flattened into an answer set.
func NewWebhookParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebhookParseFailed,
		Message:   "Webhook payload could not be parsed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveInsertFailedError wraps a failed submission archive write.
func NewArchiveInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveInsertFailed,
		Message:   "Submission archive write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryFailedError wraps a failed report delivery attempt.
func NewDeliveryFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryFailed,
		Message:   fmt.Sprintf("Report delivery over %s failed", channel),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the error code from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsConfiguration reports whether err is the operator-fixable credentials
// failure.
func IsConfiguration(err error) bool {
	return CodeOf(err) == ErrCodeProviderKeyMissing
}

// IsTimeout reports whether err is one of the timeout classes.
func IsTimeout(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeProviderTimeout || code == ErrCodeSubmitTimeout
}
