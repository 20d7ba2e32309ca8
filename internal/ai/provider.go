package ai

import (
	"context"
	"io"
)

// Provider defines the interface for generative text providers
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string

	// Complete performs a single, non-streaming completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// SupportsGrounding reports whether the provider can verify answers with live search
	SupportsGrounding() bool

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	io.Closer
}
