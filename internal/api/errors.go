package api

import "net/http"

// Error categories, one per failure class the read surfaces can report.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryNotFound        = "NOT_FOUND"
	CategoryInternalError   = "INTERNAL_ERROR"
	CategoryUnavailable     = "SERVICE_UNAVAILABLE"
)

// Error is the JSON error envelope returned by both read APIs.
type Error struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
	Category      string `json:"category"`
}

// NewValidationError creates a 400 error for an invalid client request.
func NewValidationError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
	}
}

// NewNotFoundError creates a 404 error, distinct from both a bad request and
// a real fault.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryNotFound,
	}
}

// NewInternalError creates a 500 error.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// NewUnavailableError creates a 503 error for backend connectivity failures.
func NewUnavailableError(message, correlationID string) *Error {
	return &Error{
		Status:        "unavailable",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryUnavailable,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
