// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Local store errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrNotAuthenticated = errors.New("not logged in")

	// Sync errors.
	ErrCancelled = errors.New("cancelled by user")
	// ErrRefreshFailed wraps a failed dashboard fetch that followed a successful mutation.
	// The change is on the server; only the local copy is out of date.
	ErrRefreshFailed = errors.New("refresh after change failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RefreshFailedMessage is shown when a change was saved but the dashboard could not be reloaded.
const RefreshFailedMessage = "Saved, but refresh failed"

// ConnectivityMessage is what the user sees when the API cannot be reached.
const ConnectivityMessage = "Error connecting to server"

// ValidationError is raised locally before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ServerError is a non-2xx response from the API. Message is the server's own text.
type ServerError struct {
	Message string
	Status  int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// TransportError covers unreachable servers and responses that could not be decoded.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the text to show for err: validation and server messages verbatim,
// a generic connectivity message for transport failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrRefreshFailed) {
		return RefreshFailedMessage
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		return fmt.Sprintf("Request failed (%d)", serverErr.Status)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return ConnectivityMessage
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	if errors.Is(err, ErrNotAuthenticated) {
		return "Please log in first"
	}
	if errors.Is(err, ErrCancelled) {
		return "Cancelled"
	}

	return err.Error()
}

// IsValidation reports whether err was raised by local validation.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsRetryable determines if an error should trigger a retry.
// Only the report exporter retries; API calls never do.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
