package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	appName     = "sitescan"
	projectFile = "./.sitescan.yaml"
	systemFile  = "/etc/sitescan/config.yaml"
	envPrefix   = "SITESCAN_"
)

// ConfigPaths returns the config file search paths in priority order:
// project file, user file under XDG_CONFIG_HOME, system file.
func ConfigPaths() []string {
	return []string{
		projectFile,
		UserConfigPath(),
		systemFile,
	}
}

// UserConfigPath returns the per-user config file location
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths(),
	}
}

// NewLoaderWithPaths creates a loader searching paths, highest priority first
func NewLoaderWithPaths(paths ...string) *Loader {
	return &Loader{configPaths: paths}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.sitescan.yaml
// 4. $XDG_CONFIG_HOME/sitescan/config.yaml
// 5. /etc/sitescan/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	// If custom path is provided, use only that path
	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := l.configPaths[i]
			if !fileExists(path) {
				continue
			}
			if err := l.loadFromFile(config, path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", path, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile finds the first existing config file in the search paths
func (l *Loader) FindConfigFile() (string, bool) {
	for _, path := range l.configPaths {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// Paths returns the search paths, highest priority first
func (l *Loader) Paths() []string {
	paths := make([]string, len(l.configPaths))
	copy(paths, l.configPaths)
	return paths
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	// A zero temperature is a valid setting, so presence decides, not value.
	var explicit struct {
		AI struct {
			Temperature *float64 `yaml:"temperature"`
		} `yaml:"ai"`
	}
	if err := yaml.Unmarshal(data, &explicit); err == nil && explicit.AI.Temperature != nil {
		config.AI.Temperature = *explicit.AI.Temperature
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"AI_TEMPERATURE": func(v string) error { return parseFloat(v, &config.AI.Temperature) },
		"AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },

		// Scan Config
		"SCAN_TICK_INTERVAL": func(v string) error { return parseDuration(v, &config.Scan.TickInterval) },
		"SCAN_INCREMENT":     func(v string) error { return parseInt(v, &config.Scan.Increment) },
		"SCAN_CAP":           func(v string) error { return parseInt(v, &config.Scan.Cap) },
		"SCAN_DEFAULT_URL":   func(v string) error { config.Scan.DefaultURL = v; return nil },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT":   func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":       func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":          func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_TIMESTAMP_FORMAT": func(v string) error { config.Output.TimestampFormat = v; return nil },
		"OUTPUT_THEME":            func(v string) error { config.Output.Theme = v; return nil },
		"OUTPUT_WIDTH":            func(v string) error { return parseInt(v, &config.Output.Width) },
		"OUTPUT_AUTO_RELOAD":      func(v string) error { return parseBool(v, &config.Output.AutoReload) },
	}

	for suffix, setter := range envMappings {
		envVar := envPrefix + suffix
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	if config.AI.APIKey == "" {
		config.AI.APIKey = apiKeyFromEnv(config.AI.Provider)
	}

	return nil
}

// apiKeyFromEnv reads the provider's conventional key variable, then API_KEY
func apiKeyFromEnv(provider string) string {
	var candidates []string
	switch provider {
	case "gemini":
		candidates = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case "openai":
		candidates = []string{"OPENAI_API_KEY"}
	}
	candidates = append(candidates, "API_KEY")

	for _, name := range candidates {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config
// Only non-zero values from source overwrite destination
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeAIConfig(&dst.AI, &src.AI)
	mergeScanConfig(&dst.Scan, &src.Scan)
	mergeOutputConfig(&dst.Output, &src.Output)
}

// mergeAIConfig merges AI configuration
func mergeAIConfig(dst, src *AIConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Temperature != 0 {
		dst.Temperature = src.Temperature
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

// mergeScanConfig merges progress simulation configuration
func mergeScanConfig(dst, src *ScanConfig) {
	if src.TickInterval != 0 {
		dst.TickInterval = src.TickInterval
	}
	if src.Increment != 0 {
		dst.Increment = src.Increment
	}
	if src.Cap != 0 {
		dst.Cap = src.Cap
	}
	if src.DefaultURL != "" {
		dst.DefaultURL = src.DefaultURL
	}
}

// mergeOutputConfig merges output configuration
func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.TimestampFormat != "" {
		dst.TimestampFormat = src.TimestampFormat
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.Width != 0 {
		dst.Width = src.Width
	}
	// Booleans default to false, so a set value in a file always wins
	mergeIfSet(&dst.Verbose, src.Verbose)
	mergeIfSet(&dst.AutoReload, src.AutoReload)
}

// mergeIfSet only merges boolean values that are true
func mergeIfSet(dst *bool, src bool) {
	if src {
		*dst = src
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
