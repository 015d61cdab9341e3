// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponder maps internal errors to the HTTP surface. Clients only
// ever see an opaque message; code details stay in the server logs.
type ErrorResponder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorResponder(logger Logger) *ErrorResponder {
	return &ErrorResponder{logger: logger}
}

type errorBody struct {
	Error string `json:"error"`
}

// Respond writes the HTTP error for err and logs the full detail.
func (h *ErrorResponder) Respond(w http.ResponseWriter, requestID string, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"requestId": requestID,
		"code":      string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	status := StatusFor(stdErr.Code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: publicMessage(stdErr)})
}

// StatusFor maps an error code to the HTTP status returned to the client.
func StatusFor(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidChatRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides upstream status, bodies and query text from clients.
func publicMessage(stdErr *StandardError) string {
	if stdErr.Code == ErrCodeInvalidChatRequest {
		return stdErr.Message
	}
	return "internal error"
}

// normalizeError ensures we always have a StandardError
func (h *ErrorResponder) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
