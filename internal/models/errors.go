package models

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when the classifier checkpoint directory is absent.
var ErrModelNotFound = errors.New("model checkpoint not found")

// ConfigurationError marks a feature disabled by missing configuration,
// typically a credential. It is fatal to that feature only.
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
}

// ModelUnavailableError disables classification while leaving the rest of the
// service usable.
type ModelUnavailableError struct {
	Path string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model unavailable at %s: %v", e.Path, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// RemoteServiceError wraps any failure of an external collaborator: transport
// errors, timeouts, non-2xx responses and malformed payloads.
type RemoteServiceError struct {
	Service string
	Err     error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Service, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

func NewRemoteServiceError(service string, err error) *RemoteServiceError {
	return &RemoteServiceError{Service: service, Err: err}
}

// ValidationError is raised before any side effect when user input is rejected.
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

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsModelUnavailable(err error) bool {
	var target *ModelUnavailableError
	return errors.As(err, &target) || errors.Is(err, ErrModelNotFound)
}

func IsRemoteServiceError(err error) bool {
	var target *RemoteServiceError
	return errors.As(err, &target)
}
