package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
)

// Provider speaks the chat-completions protocol. It has no search tool, so
// grounding requests are sent as plain prompts.
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError(ProviderName, "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) SupportsGrounding() bool {
	return false
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ai.NewValidationError("prompt", "", "prompt is required")
	}

	response, err := p.sendChatRequest(ctx, p.buildChatRequest(req))
	if err != nil {
		return nil, err
	}

	return response.ToAIResponse(req.RequestID), nil
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) *ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	temperature := p.config.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	return &ChatCompletionRequest{
		Model:       model,
		Messages:    buildMessages(req.SystemPrompt, req.Prompt),
		MaxTokens:   req.MaxTokens,
		Temperature: temperature,
		User:        req.RequestID,
	}
}

func (p *Provider) sendChatRequest(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	endpoint := p.baseURL.JoinPath("/v1/chat/completions")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", ProviderName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", ProviderName, err)
	}

	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", ProviderName, err)
		}
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", ProviderName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(resp)
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeMalformed, "failed to decode response", ProviderName, err)
	}

	return &chatResp, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	if p.config.OrganizationID != "" {
		req.Header.Set("OpenAI-Organization", p.config.OrganizationID)
	}
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var code string

	if body, err := io.ReadAll(resp.Body); err == nil {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil {
			if errorResp.Error.Message != "" {
				message = errorResp.Error.Message
			}
			code = errorResp.Error.Code
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ai.NewHTTPError(ai.ErrTypeAuthentication, message, ProviderName, resp.StatusCode)
	case http.StatusTooManyRequests:
		if code == "insufficient_quota" {
			return ai.NewHTTPError(ai.ErrTypeQuota, message, ProviderName, resp.StatusCode)
		}
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return ai.NewRateLimitError(ProviderName, retryAfter)
	case http.StatusBadRequest:
		return ai.NewValidationError("request", "invalid", message)
	default:
		return ai.NewHTTPError(ai.ErrTypeProvider, message, ProviderName, resp.StatusCode)
	}
}
