// Package providers wires the built-in provider factories into a registry.
package providers

import (
	"fmt"

	"github.com/123ABCabcdpogj/analysis-AI/internal/ai"
	"github.com/123ABCabcdpogj/analysis-AI/internal/ai/providers/gemini"
	"github.com/123ABCabcdpogj/analysis-AI/internal/ai/providers/openai"
)

// NewRegistry returns a registry holding every built-in provider.
func NewRegistry() (ai.Registry, error) {
	r := ai.NewRegistry()
	for _, register := range []func(ai.Registry) error{gemini.Register, openai.Register} {
		if err := register(r); err != nil {
			return nil, fmt.Errorf("register provider: %w", err)
		}
	}
	return r, nil
}
