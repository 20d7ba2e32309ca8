package openai

import (
	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(config *ai.ProviderConfig) (ai.Provider, error) {
	if config == nil {
		config = f.DefaultConfig()
	}

	return New(FromProviderConfig(config))
}

func (f *Factory) Type() string {
	return ProviderName
}

func (f *Factory) ValidateConfig(config *ai.ProviderConfig) error {
	if config == nil {
		return ai.NewConfigurationError(ProviderName, "config", "configuration is required")
	}

	return FromProviderConfig(config).Validate()
}

func (f *Factory) DefaultConfig() *ai.ProviderConfig {
	return DefaultConfig().ToProviderConfig()
}

// Register adds the OpenAI-compatible factory to r.
func Register(r ai.Registry) error {
	return r.Register(ProviderName, NewFactory())
}
