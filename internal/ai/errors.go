package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of provider error
type ErrorType string

const (
	// ErrTypeProvider indicates provider-side failures (5xx, unexpected status)
	ErrTypeProvider ErrorType = "provider"

	// ErrTypeConfiguration indicates configuration errors
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeAuthentication indicates authentication errors
	ErrTypeAuthentication ErrorType = "authentication"

	// ErrTypeRateLimit indicates rate limiting errors
	ErrTypeRateLimit ErrorType = "rate_limit"

	// ErrTypeQuota indicates quota/billing errors
	ErrTypeQuota ErrorType = "quota"

	// ErrTypeNetwork indicates network-related errors
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates timeout errors
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeValidation indicates input validation errors
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeRegistration indicates provider registration errors
	ErrTypeRegistration ErrorType = "registration"

	// ErrTypeNotFound indicates provider not found errors
	ErrTypeNotFound ErrorType = "not_found"

	// ErrTypeMalformed indicates a response body that could not be decoded
	ErrTypeMalformed ErrorType = "malformed_response"

	// ErrTypeInternal indicates internal system errors
	ErrTypeInternal ErrorType = "internal"
)

// ProviderError represents errors specific to AI providers
type ProviderError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// Provider indicates which provider caused the error
	Provider string `json:"provider,omitempty"`

	// StatusCode for HTTP-related errors
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	var parts []string

	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *ProviderError) Is(target error) bool {
	if pe, ok := target.(*ProviderError); ok {
		return e.Type == pe.Type
	}
	return false
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// RateLimitError represents rate limiting errors
type RateLimitError struct {
	Provider   string `json:"provider"`
	RetryAfter int    `json:"retry_after"`
}

// Error implements the error interface
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded for provider '%s': retry after %d seconds", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded for provider '%s'", e.Provider)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for provider '%s', field '%s': %s",
		e.Provider, e.Field, e.Message)
}

// NewProviderError creates a new provider error
func NewProviderError(errType ErrorType, message, provider string) *ProviderError {
	return &ProviderError{
		Type:     errType,
		Message:  message,
		Provider: provider,
	}
}

// NewProviderErrorWithCause creates a provider error with an underlying cause
func NewProviderErrorWithCause(errType ErrorType, message, provider string, cause error) *ProviderError {
	return &ProviderError{
		Type:     errType,
		Message:  message,
		Provider: provider,
		Cause:    cause,
	}
}

// NewHTTPError creates a provider error carrying the HTTP status
func NewHTTPError(errType ErrorType, message, provider string, status int) *ProviderError {
	return &ProviderError{
		Type:       errType,
		Message:    message,
		Provider:   provider,
		StatusCode: status,
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError(provider string, retryAfter int) *RateLimitError {
	return &RateLimitError{
		Provider:   provider,
		RetryAfter: retryAfter,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{
		Provider: provider,
		Field:    field,
		Message:  message,
	}
}

// ErrorTypeOf classifies err for diagnostics. Errors outside the taxonomy report ErrTypeInternal.
func ErrorTypeOf(err error) ErrorType {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type
	}
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return ErrTypeRateLimit
	}
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ErrTypeConfiguration
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrTypeValidation
	}
	return ErrTypeInternal
}

// IsRateLimitError checks if an error is a rate limit error
func IsRateLimitError(err error) bool {
	return ErrorTypeOf(err) == ErrTypeRateLimit
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return ErrorTypeOf(err) == ErrTypeConfiguration
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return ErrorTypeOf(err) == ErrTypeValidation
}

// IsAuthenticationError checks if an error is an authentication error
func IsAuthenticationError(err error) bool {
	return ErrorTypeOf(err) == ErrTypeAuthentication
}
