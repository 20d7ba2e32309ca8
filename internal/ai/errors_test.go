package ai

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderError_Error(t *testing.T) {
	err := &ProviderError{
		Type:       ErrTypeNetwork,
		Message:    "request failed",
		Provider:   "gemini",
		StatusCode: 502,
		Cause:      errors.New("connection reset"),
	}

	got := err.Error()
	for _, want := range []string{"provider=gemini", "type=network", "status=502", "request failed", "cause=connection reset"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestProviderError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := fmt.Errorf("wrapped: %w", NewProviderErrorWithCause(ErrTypeNetwork, "request failed", "gemini", cause))

	if !errors.Is(err, &ProviderError{Type: ErrTypeNetwork}) {
		t.Error("expected errors.Is to match on error type")
	}
	if errors.Is(err, &ProviderError{Type: ErrTypeQuota}) {
		t.Error("errors.Is matched a different error type")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestErrorTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"provider error", NewProviderError(ErrTypeQuota, "quota exceeded", "gemini"), ErrTypeQuota},
		{"rate limit", NewRateLimitError("gemini", 10), ErrTypeRateLimit},
		{"configuration", NewConfigurationError("gemini", "api_key", "missing"), ErrTypeConfiguration},
		{"validation", NewValidationError("url", "", "required"), ErrTypeValidation},
		{"wrapped validation", fmt.Errorf("submit: %w", NewValidationError("url", "", "required")), ErrTypeValidation},
		{"unknown", errors.New("boom"), ErrTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorTypeOf(tt.err); got != tt.want {
				t.Errorf("ErrorTypeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsRateLimitError(NewRateLimitError("openai", 0)) {
		t.Error("IsRateLimitError() = false for RateLimitError")
	}
	if !IsRateLimitError(NewProviderError(ErrTypeRateLimit, "slow down", "gemini")) {
		t.Error("IsRateLimitError() = false for rate_limit ProviderError")
	}
	if !IsConfigurationError(NewConfigurationError("gemini", "model", "required")) {
		t.Error("IsConfigurationError() = false")
	}
	if !IsValidationError(NewValidationError("request", "nil", "required")) {
		t.Error("IsValidationError() = false")
	}
	if !IsAuthenticationError(NewHTTPError(ErrTypeAuthentication, "bad key", "gemini", 401)) {
		t.Error("IsAuthenticationError() = false")
	}
	if IsAuthenticationError(errors.New("plain")) {
		t.Error("IsAuthenticationError() = true for plain error")
	}
}

func TestRateLimitError_Message(t *testing.T) {
	if got := NewRateLimitError("gemini", 0).Error(); strings.Contains(got, "retry after") {
		t.Errorf("unexpected retry hint without RetryAfter: %q", got)
	}
	if got := NewRateLimitError("gemini", 30).Error(); !strings.Contains(got, "retry after 30 seconds") {
		t.Errorf("missing retry hint: %q", got)
	}
}
