// Package apierr defines the wire shape of API errors.
//
// Validation failures are reported per field as a map from field name to a
// list of human-readable messages with a 400 status. Credential, token and
// state errors use a single code plus description.
package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error codes used in single-code error responses.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidCredentials = "invalid_credentials"
	CodeAccountDisabled    = "account_disabled"
	CodeInvalidToken       = "invalid_token"
	CodeNotFound           = "not_found"
	CodeServerError        = "server_error"
)

// APIError is a single-code error response.
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// Predefined single-code errors.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" so the two cases cannot be told apart.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        CodeInvalidCredentials,
		Description: "invalid credentials",
	}

	ErrAccountDisabled = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        CodeAccountDisabled,
		Description: "account is disabled",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        CodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        CodeNotFound,
		Description: "resource not found",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        CodeServerError,
		Description: "internal server error",
	}
)

// FieldErrors collects validation messages per field. The zero value is
// ready to use.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// HasErrors reports whether any field collected a message.
func (fe FieldErrors) HasErrors() bool { return len(fe) > 0 }

// Error implements the error interface with a stable field ordering.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], "; "))
	}
	return strings.Join(parts, ", ")
}

// WriteError writes the field-keyed validation envelope with a 400 status.
func (fe FieldErrors) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": fe})
}
