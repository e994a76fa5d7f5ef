package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vapictl/cli/internal/vapi"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrorTypeUnknown represents an unclassified error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeValidation represents argument/flag validation errors
	ErrorTypeValidation
	// ErrorTypeAPI represents a rejection by the Vapi API
	ErrorTypeAPI
	// ErrorTypeNetwork represents transport failures
	ErrorTypeNetwork
	// ErrorTypeRuntime represents general runtime errors
	ErrorTypeRuntime
	// ErrorTypeConfig represents missing or invalid credentials/settings
	ErrorTypeConfig
)

// CLIError wraps errors with type information and context for better UX
type CLIError struct {
	Type    ErrorType
	Err     error
	Context string // Additional context or help text for the user
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%v\n%s", e.Err, e.Context)
	}
	return e.Err.Error()
}

// Unwrap implements error unwrapping for Go 1.13+ error chains
func (e *CLIError) Unwrap() error {
	return e.Err
}

// ValidationError creates a validation error (shows usage hints)
func ValidationError(err error, context string) *CLIError {
	return &CLIError{Type: ErrorTypeValidation, Err: err, Context: context}
}

// APIError creates an API error
func APIError(err error) *CLIError {
	return &CLIError{Type: ErrorTypeAPI, Err: err}
}

// NetworkError creates a network error
func NetworkError(err error) *CLIError {
	return &CLIError{Type: ErrorTypeNetwork, Err: err}
}

// RuntimeError creates a runtime error
func RuntimeError(err error) *CLIError {
	return &CLIError{Type: ErrorTypeRuntime, Err: err}
}

// ConfigError creates a configuration error
func ConfigError(err error) *CLIError {
	return &CLIError{Type: ErrorTypeConfig, Err: err}
}

// ConfigErrorWithContext creates a configuration error with context
func ConfigErrorWithContext(err error, context string) *CLIError {
	return &CLIError{Type: ErrorTypeConfig, Err: err, Context: context}
}

// Classify wraps err in a CLIError matching its origin. Errors that are
// already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return err
	}

	var reqErr *vapi.RequestError
	if stderrors.As(err, &reqErr) {
		if reqErr.Kind == vapi.KindRemote {
			return APIError(err)
		}
		return NetworkError(err)
	}

	return RuntimeError(err)
}
