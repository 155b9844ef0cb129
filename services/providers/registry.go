package providers

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrProviderNotFound is returned when no factory is registered for a tag
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderAlreadyRegistered is returned when trying to register a duplicate tag
	ErrProviderAlreadyRegistered = errors.New("provider already registered")
)

// Factory builds a provider client from connection options.
type Factory func(opts ClientOptions) (Provider, error)

// Registry maps provider tags to client factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register registers the factory for a provider tag
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("provider name cannot be empty")
	}
	if factory == nil {
		return errors.New("provider factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrProviderAlreadyRegistered, name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is Register that panics on error. Intended for wiring at startup.
func (r *Registry) MustRegister(name string, factory Factory) *Registry {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
	return r
}

// New builds a client for the given provider tag
func (r *Registry) New(name string, opts ClientOptions) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}

	provider, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider %s: %w", name, err)
	}
	return provider, nil
}

// Names returns the registered provider tags in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
