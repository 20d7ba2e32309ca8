package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
	"github.com/123ABCabcdpogj/analysis-AI/internal/ai/providers"
	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/emoji"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
)

// apiKeyHints names the environment variables checked for each provider
var apiKeyHints = map[string]string{
	"gemini": "GEMINI_API_KEY",
	"openai": "OPENAI_API_KEY",
}

// providerConfig maps the AI section of the configuration onto the provider
// registry's config type.
func providerConfig(aiConfig *config.AIConfig) *ai.ProviderConfig {
	name := strings.ToLower(aiConfig.Provider)
	return &ai.ProviderConfig{
		Name:               name,
		Type:               name,
		APIKey:             aiConfig.APIKey,
		BaseURL:            aiConfig.Endpoint,
		DefaultModel:       modelFor(name, aiConfig.Model),
		DefaultTemperature: aiConfig.Temperature,
		Timeout:            aiConfig.Timeout,
	}
}

// modelFor drops a Gemini model name configured for another provider, so the
// provider falls back to its own default.
func modelFor(provider, model string) string {
	if provider != config.DefaultProvider && strings.HasPrefix(model, "gemini") {
		return ""
	}
	return model
}

// createAIProvider builds the configured provider from the registry
func createAIProvider(aiConfig *config.AIConfig) (ai.Provider, error) {
	registry, err := providers.NewRegistry()
	if err != nil {
		return nil, err
	}

	pc := providerConfig(aiConfig)
	provider, err := registry.Create(pc.Name, pc)
	if err != nil {
		if ai.IsConfigurationError(err) && pc.APIKey == "" {
			hint := apiKeyHints[pc.Name]
			if hint == "" {
				hint = "SITESCAN_AI_API_KEY"
			}
			return nil, fmt.Errorf("no API key for %s provider: set %s or ai.api_key in the config file: %w", pc.Name, hint, err)
		}
		return nil, fmt.Errorf("failed to create AI provider %s: %w", pc.Name, err)
	}
	return provider, nil
}

// newScanClient wraps provider in the analysis client
func newScanClient(provider ai.Provider, aiConfig *config.AIConfig, log *logger.Logger) (*scan.Client, error) {
	return scan.NewClient(provider,
		scan.WithModel(modelFor(strings.ToLower(aiConfig.Provider), aiConfig.Model)),
		scan.WithTemperature(aiConfig.Temperature),
		scan.WithLogger(log),
	)
}

// newAnalyzer builds the provider and analysis client for aiConfig. Closing
// the client closes the provider.
func newAnalyzer(aiConfig *config.AIConfig) (*scan.Client, error) {
	provider, err := createAIProvider(aiConfig)
	if err != nil {
		return nil, err
	}
	client, err := newScanClient(provider, aiConfig, GetLogger("scan"))
	if err != nil {
		_ = provider.Close()
		return nil, err
	}
	return client, nil
}

// uiAnalyzerFactory adapts newAnalyzer for config reloads in the TUI
func uiAnalyzerFactory(aiConfig *config.AIConfig) (scan.Analyzer, error) {
	client, err := newAnalyzer(aiConfig)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newProvidersCommand lists the AI providers sitescan can use
func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List available AI providers",
		Long: `List the AI providers built into sitescan and show which one the current
configuration selects. Only providers with web search grounding can look at the
live website; others answer from what the model already knows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadGlobalConfig()
			if err != nil {
				return err
			}

			registry, err := providers.NewRegistry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Available AI providers:\n\n", emoji.GetEmoji("brain"))
			for _, name := range registry.List() {
				marker := "  "
				if name == strings.ToLower(cfg.AI.Provider) {
					marker = "▶ "
				}
				fmt.Fprintf(out, "%s%s (key: %s)\n", marker, name, apiKeyHints[name])
			}
			return nil
		},
	}
}
