package ai

import (
	"time"
)

// CompletionRequest represents a request for text generation
type CompletionRequest struct {
	// Prompt is the input text for completion
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Model specifies which model to use (provider-specific)
	Model string `json:"model,omitempty"`

	// Temperature controls randomness; nil means provider default
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens limits the response length; zero means provider default
	MaxTokens int `json:"max_tokens,omitempty"`

	// Grounding asks the provider to verify facts with live search when supported
	Grounding bool `json:"grounding,omitempty"`

	// Metadata for request tracking
	RequestID string            `json:"request_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text, possibly empty
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	// Usage contains token usage information when reported
	Usage *TokenUsage `json:"usage,omitempty"`

	// Model indicates which model was used
	Model string `json:"model"`

	// RequestID matches the original request
	RequestID string `json:"request_id,omitempty"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`

	// Sources lists the web pages the provider consulted while grounding
	Sources []GroundingSource `json:"sources,omitempty"`
}

// GroundingSource is a web page cited by a grounded response
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// Type is the provider type (gemini, openai)
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"api_key,omitempty"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is the default model to use
	DefaultModel string `json:"default_model,omitempty"`

	// DefaultTemperature for requests
	DefaultTemperature float64 `json:"default_temperature,omitempty"`

	// Timeout for requests; zero disables the client-side deadline
	Timeout time.Duration `json:"timeout,omitempty"`

	// Custom headers for requests
	Headers map[string]string `json:"headers,omitempty"`

	// Provider-specific options
	Options map[string]interface{} `json:"options,omitempty"`
}
