package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# SiteScan configuration
#
# Search order (first match wins per field):
#   ./.sitescan.yaml
#   $XDG_CONFIG_HOME/sitescan/config.yaml
#   /etc/sitescan/config.yaml
# Environment variables prefixed with SITESCAN_ override file values,
# e.g. SITESCAN_AI_MODEL=gemini-2.5-pro.

version: "1.0"

ai:
  # Provider backend: gemini (search grounding) or openai (chat completions)
  provider: gemini
  model: gemini-2.5-flash
  # Leave empty to use the provider's public endpoint
  endpoint: ""
  # Prefer GEMINI_API_KEY / OPENAI_API_KEY / API_KEY in the environment
  api_key: ""
  # Low temperature keeps extraction factual
  temperature: 0.1
  # 0 waits for the provider indefinitely
  timeout: 0s

scan:
  # Cosmetic progress while the provider works; never reaches 100
  tick_interval: 800ms
  increment: 5
  cap: 90
  # Prefilled in the URL field of the interactive view
  default_url: https://www.raysrestaurants.com/

output:
  # Headless report format: text, markdown, json
  default_format: text
  # auto, always, never
  color_mode: auto
  verbose: false
  # Go time layout for the report header
  timestamp_format: "Jan 2, 2006 3:04 PM"
  # default, high-contrast, minimal
  theme: default
  # Report wrap width, 0 follows the terminal
  width: 0
  # Reload this file while the interactive view is open
  auto_reload: false
`
}

// MinimalSampleConfig returns a configuration with only essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"

ai:
  provider: gemini
  model: gemini-2.5-flash

output:
  default_format: text
`
}
