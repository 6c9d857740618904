package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for backend operations
var (
	// ErrNetwork indicates no response was received from the backend
	ErrNetwork = errors.New("could not connect to the server")

	// ErrNotFound matches any APIError carrying a 404 status
	ErrNotFound = errors.New("resource not found")
)

// APIError is a non-2xx response from the backend.
// Structured is true when the body carried a JSON message field.
type APIError struct {
	Status     int
	Message    string
	Structured bool
}

// Error returns the backend message verbatim, or a generic fallback
func (e *APIError) Error() string {
	if e.Structured && e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ReasonPastDate is the field reason for a date earlier than today
const ReasonPastDate = "must not be in the past"

// ValidationError is a client-side validation failure, raised before any request.
type ValidationError struct {
	Fields map[string]string // field name -> reason
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		if _, ok := e.Fields["email"]; ok {
			return "Please enter a valid email address"
		}
		if reason, ok := e.Fields["dueAt"]; ok && reason == ReasonPastDate {
			return "Due date cannot be in the past"
		}
	}
	return "Please fill all required fields correctly"
}

// UserMessage returns the text shown to the user for an error
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	if errors.Is(err, ErrNetwork) {
		return ErrNetwork.Error()
	}
	return err.Error()
}
