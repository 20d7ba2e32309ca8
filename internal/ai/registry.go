package ai

import (
	"sort"
	"sync"
)

// Registry manages available provider factories
type Registry interface {
	// Register adds a provider factory to the registry
	Register(name string, factory ProviderFactory) error

	// Create builds a provider instance from the named factory
	Create(name string, config *ProviderConfig) (Provider, error)

	// List returns all registered provider names, sorted
	List() []string

	// IsRegistered checks if a provider is registered
	IsRegistered(name string) bool
}

// ProviderFactory creates provider instances
type ProviderFactory interface {
	// Create creates a new provider instance with the given config
	Create(config *ProviderConfig) (Provider, error)

	// Type returns the provider type this factory creates
	Type() string

	// ValidateConfig validates configuration for this provider type
	ValidateConfig(config *ProviderConfig) error

	// DefaultConfig returns a default configuration
	DefaultConfig() *ProviderConfig
}

// defaultRegistry implements Registry interface
type defaultRegistry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates a new provider registry
func NewRegistry() Registry {
	return &defaultRegistry{
		factories: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory to the registry
func (r *defaultRegistry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &ProviderError{
			Type:     ErrTypeRegistration,
			Message:  "provider already registered",
			Provider: name,
		}
	}

	r.factories[name] = factory
	return nil
}

// Create validates config against the named factory and builds a provider.
// A nil config falls back to the factory defaults.
func (r *defaultRegistry) Create(name string, config *ProviderConfig) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &ProviderError{
			Type:     ErrTypeNotFound,
			Message:  "provider not registered",
			Provider: name,
		}
	}

	if config == nil {
		config = factory.DefaultConfig()
	}

	if err := factory.ValidateConfig(config); err != nil {
		return nil, err
	}

	return factory.Create(config)
}

// List returns all registered provider names
func (r *defaultRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a provider is registered
func (r *defaultRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
