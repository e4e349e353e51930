// Package errors provides the error types shared across stockmatch.
// Upstream collaborators (POS API, spreadsheet API, files) report failures
// through these types so callers can branch with errors.Is / errors.As.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Re-exported from the standard library so callers need one import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCredentialsRequired indicates that a client was built without credentials.
	ErrCredentialsRequired = errors.New("credentials required")

	// ErrUnauthorized indicates that an upstream service rejected the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstreamUnavailable indicates that an upstream service is failing.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrRateLimited indicates that an upstream rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a failed call to an upstream API.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Service, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return target == ErrUnauthorized
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrUpstreamUnavailable
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// AuthenticationError represents rejected or missing credentials.
type AuthenticationError struct {
	Service string
	Method  string // "api_key", "service_account", ...
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Service, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(service, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{Service: service, Method: method, Message: message, Err: err}
}

// ConfigError represents a configuration problem detected at construction.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents malformed input such as a CSV export or a YAML file.
type ParseError struct {
	Format  string // "csv", "yaml", "json", "xlsx"
	Source  string
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s parse error in %s line %d: %s", e.Format, e.Source, e.Line, e.Message)
	case e.Source != "":
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{Format: format, Source: source, Message: message, Err: err}
}

// IOError represents a failed file operation.
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents a failed operation on a named remote resource.
type ResourceError struct {
	Operation string // "fetch", "list", "read"
	Resource  string // "inventory", "spreadsheet", "tab"
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// TabError records a spreadsheet tab that could not be read or classified.
// A scan keeps going after one; the tab contributes no products.
type TabError struct {
	Tab   string
	Stage string // "detect" or "read"
	Err   error
}

func (e *TabError) Error() string {
	return fmt.Sprintf("tab %q: %s failed: %v", e.Tab, e.Stage, e.Err)
}

func (e *TabError) Unwrap() error {
	return e.Err
}

type tabErrorOutput struct {
	Tab     string `json:"tab" yaml:"tab"`
	Stage   string `json:"stage" yaml:"stage"`
	Message string `json:"error" yaml:"error"`
}

func (e *TabError) output() tabErrorOutput {
	out := tabErrorOutput{Tab: e.Tab, Stage: e.Stage}
	if e.Err != nil {
		out.Message = e.Err.Error()
	}
	return out
}

// MarshalJSON renders the error as {tab, stage, error}.
func (e *TabError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.output())
}

// MarshalYAML renders the same shape as MarshalJSON.
func (e *TabError) MarshalYAML() (any, error) {
	return e.output(), nil
}

// UnmarshalJSON restores a TabError written by MarshalJSON. The cause comes
// back as a plain error carrying the original message.
func (e *TabError) UnmarshalJSON(data []byte) error {
	var in tabErrorOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.Tab, e.Stage, e.Err = in.Tab, in.Stage, nil
	if in.Message != "" {
		e.Err = errors.New(in.Message)
	}
	return nil
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnauthorized reports whether err came from rejected credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited reports whether err is a rate-limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// WrapValidation wraps an error as a ValidationError.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}
