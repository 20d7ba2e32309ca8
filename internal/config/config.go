package config

import (
	"fmt"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	AI      AIConfig     `yaml:"ai" json:"ai"`
	Scan    ScanConfig   `yaml:"scan" json:"scan"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

// AIConfig configures AI provider settings
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider"`       // gemini|openai
	Model       string        `yaml:"model" json:"model"`             // model name/identifier
	Endpoint    string        `yaml:"endpoint" json:"endpoint"`       // API base URL, empty for the provider default
	APIKey      string        `yaml:"api_key" json:"api_key"`         // API key
	Temperature float64       `yaml:"temperature" json:"temperature"` // sampling temperature
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`         // request timeout, 0 waits indefinitely
}

// ScanConfig configures the progress simulation shown while a scan runs
type ScanConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval"`
	Increment    int           `yaml:"increment" json:"increment"`
	Cap          int           `yaml:"cap" json:"cap"`
	DefaultURL   string        `yaml:"default_url" json:"default_url"` // prefilled in the URL input
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format" json:"default_format"`     // text|markdown|json
	ColorMode       string `yaml:"color_mode" json:"color_mode"`             // auto|always|never
	Verbose         bool   `yaml:"verbose" json:"verbose"`                   // default verbosity
	TimestampFormat string `yaml:"timestamp_format" json:"timestamp_format"` // report timestamp layout
	Theme           string `yaml:"theme" json:"theme"`                       // default|high-contrast|minimal
	Width           int    `yaml:"width" json:"width"`                       // report wrap width, 0 follows the terminal
	AutoReload      bool   `yaml:"auto_reload" json:"auto_reload"`           // reload this file while the TUI runs
}

const (
	DefaultProvider = "gemini"
	DefaultModel    = "gemini-2.5-flash"
	DefaultURL      = "https://www.raysrestaurants.com/"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider:    DefaultProvider,
			Model:       DefaultModel,
			Endpoint:    "",
			APIKey:      "",
			Temperature: 0.1,
			Timeout:     0,
		},
		Scan: ScanConfig{
			TickInterval: progress.DefaultInterval,
			Increment:    progress.DefaultIncrement,
			Cap:          progress.DefaultCap,
			DefaultURL:   DefaultURL,
		},
		Output: OutputConfig{
			DefaultFormat:   "text",
			ColorMode:       "auto",
			Verbose:         false,
			TimestampFormat: "Jan 2, 2006 3:04 PM",
			Theme:           "default",
			Width:           0,
			AutoReload:      false,
		},
	}
}

// Simulator returns the progress simulator described by the scan settings
func (c *Config) Simulator() progress.Simulator {
	return progress.Simulator{
		Interval:  c.Scan.TickInterval,
		Increment: c.Scan.Increment,
		Cap:       c.Scan.Cap,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateScanConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	validProviders := map[string]bool{
		"gemini": true,
		"openai": true,
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("invalid AI provider: %s (must be one of: gemini, openai)", c.AI.Provider)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.AI.Temperature)
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

// validateScanConfig validates the progress simulation settings
func (c *Config) validateScanConfig() error {
	if err := c.Simulator().Validate(); err != nil {
		return fmt.Errorf("invalid scan settings: %w", err)
	}
	if c.Scan.DefaultURL != "" {
		if _, err := scan.ValidateURL(c.Scan.DefaultURL); err != nil {
			return fmt.Errorf("invalid default_url: %w", err)
		}
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		if _, ok := theme.ByName(c.Output.Theme); !ok {
			return fmt.Errorf("invalid theme: %s (must be one of: %v)", c.Output.Theme, theme.Names())
		}
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("width must be non-negative")
	}
	return nil
}
