package scan

import (
	"errors"
	"fmt"
)

const (
	// FallbackText is returned when the provider answers with no usable text.
	FallbackText = "No analysis could be generated."

	// FailureMessage is the only text a provider fault ever surfaces to the user.
	FailureMessage = "Failed to analyze the website. Please check the URL and try again."
)

// ValidationError reports a submission refused before any request is made.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// AnalysisFailedError wraps a provider fault. The message is fixed; the cause
// is only reachable through errors.Unwrap.
type AnalysisFailedError struct {
	Cause error
}

func (e *AnalysisFailedError) Error() string {
	return FailureMessage
}

func (e *AnalysisFailedError) Unwrap() error {
	return e.Cause
}

// IsValidationError checks if an error is a submission validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAnalysisFailed checks if an error is a wrapped provider fault
func IsAnalysisFailed(err error) bool {
	var ae *AnalysisFailedError
	return errors.As(err, &ae)
}
