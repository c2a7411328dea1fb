package exchange

import (
	"fmt"
	"sort"
	"sync"

	"cryptotrade/pkg/core"
)

// Constructor builds a fresh adapter for one set of credentials.
type Constructor func(creds core.Credentials, opts ...Option) (Exchange, error)

// Registry is a thread-safe factory that maps exchange names to constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates and returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register adds a constructor under name.
// If a constructor with the same name exists, it will be overwritten.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = ctor
}

// New builds an adapter for name. Each call returns an independent adapter
// with its own signer and transport. Unknown names fail with
// core.ErrUnknownExchange.
func (r *Registry) New(name string, creds core.Credentials, opts ...Option) (Exchange, error) {
	r.mu.RLock()
	ctor, exists := r.constructors[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownExchange, name)
	}
	ex, err := ctor(creds, opts...)
	if err != nil {
		return nil, fmt.Errorf("create %s adapter: %w", name, err)
	}
	return ex, nil
}

// Names returns the registered exchange names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a constructor by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.constructors, name)
}

// Exists checks whether a constructor with the given name is registered.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.constructors[name]
	return exists
}
