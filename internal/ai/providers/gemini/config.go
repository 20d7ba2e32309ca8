package gemini

import (
	"fmt"
	"net/url"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
)

const (
	ProviderName       = "gemini"
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion  = "v1beta"
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.1
)

// Config configures the Gemini provider. A zero Timeout leaves the request
// bounded only by the caller's context.
type Config struct {
	APIKey             string        `json:"api_key"`
	BaseURL            string        `json:"base_url"`
	APIVersion         string        `json:"api_version"`
	DefaultModel       string        `json:"default_model"`
	DefaultTemperature float64       `json:"default_temperature"`
	Timeout            time.Duration `json:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		APIVersion:         DefaultAPIVersion,
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

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ai.NewConfigurationError(ProviderName, "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}
	if u.Scheme == "" || u.Host == "" {
		return ai.NewConfigurationError(ProviderName, "base_url", "base URL must be absolute")
	}

	if c.APIVersion == "" {
		return ai.NewConfigurationError(ProviderName, "api_version", "API version is required")
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
			"api_version": c.APIVersion,
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
		APIVersion:         DefaultAPIVersion,
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
		if v, ok := config.Options["api_version"].(string); ok && v != "" {
			c.APIVersion = v
		}
	}

	return c
}
