// Package errors provides standardized error handling for the chat service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration: fatal at startup, never per-request recoverable.
	ErrCodeGeminiKeyMissing ErrorCode = "GEMINI_KEY_MISSING"

	// Completion upstream.
	ErrCodeCompletionUpstreamFailed ErrorCode = "COMPLETION_UPSTREAM_FAILED"
	ErrCodeCompletionTimeout        ErrorCode = "COMPLETION_TIMEOUT"

	// Data store lookups. These degrade the recommendation, they never
	// fail the request.
	ErrCodePartsLookupFailed   ErrorCode = "PARTS_LOOKUP_FAILED"
	ErrCodeProfileLookupFailed ErrorCode = "PROFILE_LOOKUP_FAILED"

	// Inbound request problems.
	ErrCodeInvalidChatRequest ErrorCode = "INVALID_CHAT_REQUEST"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewGeminiKeyMissingError creates the fatal startup configuration error.
func NewGeminiKeyMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGeminiKeyMissing,
		Message:   "Gemini API key not configured",
		Details:   "set GEMINI_API_KEY or gemini.api_key",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionUpstreamError creates a non-retryable upstream error. The
// upstream status and body stay in Details for server-side logs only.
func NewCompletionUpstreamError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionUpstreamFailed,
		Message:   "Completion service returned an error",
		Details:   fmt.Sprintf("status: %d, body: %s", status, body),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionTimeoutError creates a completion timeout error.
func NewCompletionTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionTimeout,
		Message:   "Completion call exceeded timeout threshold",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPartsLookupFailedError creates a degraded-lookup error for the parts store.
func NewPartsLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePartsLookupFailed,
		Message:   "Parts store lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileLookupFailedError creates a degraded-lookup error for seller profiles.
func NewProfileLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileLookupFailed,
		Message:   "Seller profile lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidChatRequestError creates a non-retryable request validation error.
func NewInvalidChatRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidChatRequest,
		Message:   "Chat request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsDegraded reports whether the code only degrades the recommendation
// instead of failing the request.
func IsDegraded(code ErrorCode) bool {
	switch code {
	case ErrCodePartsLookupFailed, ErrCodeProfileLookupFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "GEMINI") || strings.Contains(codeStr, "COMPLETION"):
		return "AI"
	case strings.Contains(codeStr, "PARTS") || strings.Contains(codeStr, "PROFILE"):
		return "STORE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
