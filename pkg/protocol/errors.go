// Package protocol defines the handshake messages and error codes exchanged by SRP-6a peers.
package protocol

import "fmt"

// ErrorCode represents a standardized error code for the handshake API.
type ErrorCode string

// API error codes.
const (
	// ErrCodeAuthenticationFailed indicates authentication failed.
	// Degenerate public values, proof mismatches and unknown identities all map to this code.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// ErrCodeSessionExpired indicates the handshake has expired.
	ErrCodeSessionExpired ErrorCode = "SESSION_EXPIRED"
	// ErrCodeSessionInvalid indicates the handshake ID is unknown or already used.
	ErrCodeSessionInvalid ErrorCode = "SESSION_INVALID"
	// ErrCodeRateLimitExceeded indicates too many failed attempts were made.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// ErrCodeInvalidRequest indicates the request payload is invalid.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrCodeSystemError indicates a system-level error occurred.
	ErrCodeSystemError ErrorCode = "SYSTEM_ERROR"
	// ErrCodeInvalidConfiguration indicates invalid configuration.
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new ErrorResponse.
func NewError(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new ErrorResponse with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common error constructors for convenience

// NewAuthenticationFailedError creates an authentication failed error.
// It carries no details so that callers cannot tell why authentication failed.
func NewAuthenticationFailedError() *ErrorResponse {
	return NewError(ErrCodeAuthenticationFailed, "Authentication failed")
}

// NewSessionExpiredError creates a session expired error.
func NewSessionExpiredError() *ErrorResponse {
	return NewError(ErrCodeSessionExpired, "Handshake has expired")
}

// NewSessionInvalidError creates a session invalid error.
func NewSessionInvalidError() *ErrorResponse {
	return NewError(ErrCodeSessionInvalid, "Handshake is invalid")
}

// NewRateLimitExceededError creates a rate limit exceeded error.
func NewRateLimitExceededError(retryAfter int) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeRateLimitExceeded, "Rate limit exceeded", fmt.Sprintf("Retry after %d seconds", retryAfter))
}

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", details)
}

// NewSystemError creates a system error.
func NewSystemError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeSystemError, "System error", details)
}

// NewInvalidConfigurationError creates an invalid configuration error.
func NewInvalidConfigurationError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidConfiguration, "Invalid configuration", details)
}
