// Package apierror defines the error envelopes every 4xx/5xx response uses.
// Handlers never serialize raw errors: internal detail (SQL, stack traces,
// driver messages) stays out of the wire format.
package apierror

import "fmt"

// APIError is the single-message envelope: {"detail": "..."}.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func Newf(format string, args ...any) *APIError {
	return &APIError{Detail: fmt.Sprintf(format, args...)}
}

func (e *APIError) Error() string { return e.Detail }

// ValidationError carries per-field messages for 422 responses, keyed by the
// JSON field name the client sent.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}
