package openai

import (
	"fmt"
	"net/url"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
)

const (
	ProviderName       = "openai"
	DefaultBaseURL     = "https://api.openai.com"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.1
)

type Config struct {
	APIKey             string        `json:"api_key"`
	BaseURL            string        `json:"base_url"`
	DefaultModel       string        `json:"default_model"`
	DefaultTemperature float64       `json:"default_temperature"`
	Timeout            time.Duration `json:"timeout"`
	OrganizationID     string        `json:"organization_id,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		DefaultModel:       DefaultModel,
		DefaultTemperature: DefaultTemperature,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ai.NewConfigurationError(ProviderName, "api_key", "API key is required")
	}

	if c.BaseURL == "" {
		return ai.NewConfigurationError(ProviderName, "base_url", "base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return ai.NewConfigurationError(ProviderName, "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError(ProviderName, "default_model", "default model is required")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError(ProviderName, "default_temperature", "temperature must be between 0 and 2")
	}

	if c.Timeout < 0 {
		return ai.NewConfigurationError(ProviderName, "timeout", "timeout must not be negative")
	}

	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:               ProviderName,
		Type:               ProviderName,
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		DefaultTemperature: c.DefaultTemperature,
		Timeout:            c.Timeout,
		Options: map[string]interface{}{
			"organization_id": c.OrganizationID,
		},
	}
}

func FromProviderConfig(config *ai.ProviderConfig) *Config {
	if config == nil {
		return DefaultConfig()
	}

	c := &Config{
		APIKey:             config.APIKey,
		BaseURL:            config.BaseURL,
		DefaultModel:       config.DefaultModel,
		DefaultTemperature: config.DefaultTemperature,
		Timeout:            config.Timeout,
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.DefaultModel == "" {
		c.DefaultModel = DefaultModel
	}
	if c.DefaultTemperature == 0 {
		c.DefaultTemperature = DefaultTemperature
	}

	if config.Options != nil {
		if orgID, ok := config.Options["organization_id"].(string); ok {
			c.OrganizationID = orgID
		}
	}

	return c
}
