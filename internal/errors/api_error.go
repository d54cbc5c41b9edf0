package errors

import "net/http"

// APIError is returned by services and rendered by handlers as
// {"error": {"code", "message", "details"}}.
type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// New builds an error with no details.
func New(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Internal hides the cause behind a 500; an empty message gets a generic one.
func Internal(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return New(http.StatusInternalServerError, "internal_error", message)
}

// BadRequest is a 400 with a caller-chosen code.
func BadRequest(code, message string) *APIError {
	return New(http.StatusBadRequest, code, message)
}

// InvalidInput reports a value outside its domain, such as a negative
// duration or a non-positive water amount.
func InvalidInput(message string) *APIError {
	return BadRequest("invalid_input", message)
}

// Validation reports per-field failures; details maps field to messages.
func Validation(message string, details interface{}) *APIError {
	err := BadRequest("validation_failed", message)
	err.Details = details
	return err
}

// Unauthorized is used for missing or bad tokens and failed logins.
func Unauthorized(message string) *APIError {
	if message == "" {
		message = "unauthorized"
	}
	return New(http.StatusUnauthorized, "unauthorized", message)
}

// NotFound is a 404 with a resource-specific code.
func NotFound(code, message string) *APIError {
	return New(http.StatusNotFound, code, message)
}

// Conflict is a 409; details may be nil.
func Conflict(code, message string, details interface{}) *APIError {
	err := New(http.StatusConflict, code, message)
	err.Details = details
	return err
}
