// Package errors provides the HTTP error body and the boundary translation
// from domain failures to transport status codes.
package errors

import "net/http"

// Body is the JSON payload returned for every failed request. Errors is
// populated only for field-validation failures.
type Body struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// APIError couples a transport status with its response body.
type APIError struct {
	Status int
	Body   Body
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Body.Message
}

// NotFound builds a 404 error.
func NotFound(message string) APIError {
	return APIError{Status: http.StatusNotFound, Body: Body{Message: message}}
}

// BadRequest builds a 400 error.
func BadRequest(message string) APIError {
	return APIError{Status: http.StatusBadRequest, Body: Body{Message: message}}
}

// Validation builds a 400 error carrying per-field violation messages.
func Validation(fieldErrors map[string]string) APIError {
	return APIError{
		Status: http.StatusBadRequest,
		Body:   Body{Message: "Validation failed.", Errors: fieldErrors},
	}
}

// Internal builds a 500 error.
func Internal(message string) APIError {
	return APIError{Status: http.StatusInternalServerError, Body: Body{Message: message}}
}
