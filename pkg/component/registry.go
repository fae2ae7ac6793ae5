package component

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores component definitions by name, providing discovery and
// duplication safeguards. Engines resolve call sites through it.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]Definition),
	}
}

// Register adds a definition by its Name. Duplicate names return an error.
func (r *Registry) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("component: definition %q already registered", def.Name)
	}

	r.definitions[def.Name] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[name]
	if !ok {
		return Definition{}, fmt.Errorf("component: definition %q not found", name)
	}
	return def, nil
}

// MustGet panics if the definition is missing.
func (r *Registry) MustGet(name string) Definition {
	def, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return def
}

// List returns a sorted list of registered component names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a definition is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.definitions[name]
	return ok
}
