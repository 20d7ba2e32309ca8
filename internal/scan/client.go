package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
)

// Analyzer produces a Markdown report for a website.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (string, error)
}

// Client issues one grounded completion per Analyze call.
type Client struct {
	provider    ai.Provider
	model       string
	temperature *float64
	logger      *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithTemperature overrides the provider's default sampling temperature.
// Zero is sent as is.
func WithTemperature(temperature float64) Option {
	return func(c *Client) { c.temperature = &temperature }
}

// WithLogger sets the logger that receives failure detail.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client backed by provider.
func NewClient(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("scan client requires a provider")
	}

	c := &Client{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.New("scan", nil)
	}
	return c, nil
}

// Close releases the provider's idle connections. Calls already in flight
// are not interrupted.
func (c *Client) Close() error {
	return c.provider.Close()
}

// Analyze sends the fixed prompt for url. Provider faults come back as
// *AnalysisFailedError; an empty answer is the fallback text, not an error.
func (c *Client) Analyze(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", &ValidationError{Field: "url", Message: "a website URL is required"}
	}

	requestID := fmt.Sprintf("scan-%d", time.Now().UnixNano())
	start := time.Now()

	c.logger.DebugWithFields("requesting analysis", []logger.Field{
		logger.F("provider", c.provider.Name()),
		logger.F("url", url),
		logger.F("request_id", requestID),
	})

	prompt := BuildPrompt(url)
	resp, err := c.provider.Complete(ctx, &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		Model:        c.model,
		Temperature:  c.temperature,
		Grounding:    true,
		RequestID:    requestID,
	})
	if err != nil {
		c.logger.ErrorWithFields("analysis failed", []logger.Field{
			logger.F("provider", c.provider.Name()),
			logger.F("url", url),
			logger.F("error_type", string(ai.ErrorTypeOf(err))),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		})
		return "", &AnalysisFailedError{Cause: err}
	}

	fields := []logger.Field{
		logger.F("provider", c.provider.Name()),
		logger.F("finish_reason", resp.FinishReason),
		logger.F("sources", len(resp.Sources)),
		logger.Duration(time.Since(start)),
	}
	if resp.Usage != nil {
		fields = append(fields, logger.F("total_tokens", resp.Usage.TotalTokens))
	}
	c.logger.InfoWithFields("analysis complete", fields)

	if strings.TrimSpace(resp.Content) == "" {
		return FallbackText, nil
	}
	return resp.Content, nil
}
