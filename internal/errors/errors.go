package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrMissingParameter = New(http.StatusBadRequest, "MISSING_PARAMETER", "Required parameter is missing")

	// 404 Not Found
	ErrNotFound        = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrDatasetNotFound = New(http.StatusNotFound, "DATASET_NOT_FOUND", "Dataset not found")

	// 413 Payload Too Large
	ErrUploadTooLarge = New(http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "Uploaded file exceeds the size limit")

	// 422 Unprocessable Entity
	ErrUnsupportedFormat = New(http.StatusUnprocessableEntity, "UNSUPPORTED_FORMAT", "File is not parseable as CSV or Excel")
	ErrEmptyDataset      = New(http.StatusUnprocessableEntity, "EMPTY_DATASET", "Dataset contains no usable rows after cleaning")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		map[string]interface{}{"errors": errors},
	)
}

// DatasetNotFoundError creates a dataset not found error naming the session
func DatasetNotFoundError(id string) *APIError {
	return NewWithDetails(http.StatusNotFound, "DATASET_NOT_FOUND",
		fmt.Sprintf("Dataset '%s' not found", id),
		map[string]interface{}{"dataset_id": id})
}

// UnsupportedFormatError creates a format error carrying the parse cause
func UnsupportedFormatError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "UNSUPPORTED_FORMAT",
		"File is not parseable as CSV or Excel", err.Error())
}

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}
