// Package errs defines the JSON error shape returned by the API.
package errs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a validation failure on a single field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is an error that knows which status it maps to.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// codeFor turns "Bad Request" into "BAD_REQUEST".
func codeFor(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

func New(status int, message string) *HTTPError {
	return &HTTPError{Code: codeFor(status), Message: message, Status: status}
}

func NewBadRequestError(message string) *HTTPError {
	return New(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) *HTTPError {
	return New(http.StatusNotFound, message)
}

// NewInternalServerError hides the underlying cause from the client.
func NewInternalServerError() *HTTPError {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// ValidationError converts err into a 400. When err wraps validator errors
// each failing field is listed.
func ValidationError(err error) *HTTPError {
	httpErr := NewBadRequestError("Validation failed")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			httpErr.Errors = append(httpErr.Errors, FieldError{
				Field: strings.ToLower(fe.Field()),
				Error: fe.Tag(),
			})
		}
		return httpErr
	}

	httpErr.Message = "Validation failed: " + err.Error()
	return httpErr
}
