package gemini

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

// Provider talks to the Gemini generateContent REST endpoint.
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
	return true
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Complete sends one generateContent call. It never retries.
func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ai.NewValidationError("prompt", "", "prompt is required")
	}

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	resp, err := p.sendGenerateRequest(ctx, model, p.buildRequest(req))
	if err != nil {
		return nil, err
	}

	return resp.ToAIResponse(req.RequestID, model), nil
}

func (p *Provider) buildRequest(req *ai.CompletionRequest) *GenerateContentRequest {
	temperature := p.config.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	genReq := &GenerateContentRequest{
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{Text: req.Prompt}},
		}},
		GenerationConfig: &GenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	if req.SystemPrompt != "" {
		genReq.SystemInstruction = &Content{Parts: []Part{{Text: req.SystemPrompt}}}
	}

	if req.Grounding {
		genReq.Tools = []Tool{{GoogleSearch: &GoogleSearch{}}}
	}

	return genReq
}

func (p *Provider) endpoint(model string) *url.URL {
	return p.baseURL.JoinPath(p.config.APIVersion, "models", model+":generateContent")
}

func (p *Provider) sendGenerateRequest(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", ProviderName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(model).String(), bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", ProviderName, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(resp)
	}

	var genResp GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeMalformed, "failed to decode response", ProviderName, err)
	}

	return &genResp, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", ProviderName, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", ProviderName, err)
	}
	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", ProviderName, err)
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var status string

	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil {
			if errorResp.Error.Message != "" {
				message = errorResp.Error.Message
			}
			status = errorResp.Error.Status
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ai.NewHTTPError(ai.ErrTypeAuthentication, message, ProviderName, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(message), "quota") {
			return ai.NewHTTPError(ai.ErrTypeQuota, message, ProviderName, resp.StatusCode)
		}
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return ai.NewRateLimitError(ProviderName, retryAfter)
	case resp.StatusCode == http.StatusBadRequest && status == "FAILED_PRECONDITION":
		return ai.NewHTTPError(ai.ErrTypeConfiguration, message, ProviderName, resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest:
		return ai.NewValidationError("request", "invalid", message)
	case resp.StatusCode == http.StatusNotFound:
		return ai.NewHTTPError(ai.ErrTypeNotFound, message, ProviderName, resp.StatusCode)
	case resp.StatusCode == http.StatusGatewayTimeout:
		return ai.NewHTTPError(ai.ErrTypeTimeout, message, ProviderName, resp.StatusCode)
	default:
		return ai.NewHTTPError(ai.ErrTypeProvider, message, ProviderName, resp.StatusCode)
	}
}
