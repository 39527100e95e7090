package argtypes

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"aurora/pkg/auroratypes"
)

// Registry maps type names to argument types. It is used while assembling
// command trees; dispatch never consults it.
type Registry struct {
	mu    sync.RWMutex
	types map[string]auroratypes.ArgumentType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]auroratypes.ArgumentType),
	}
}

// NewDefaultRegistry creates a registry holding the built-in types under
// "string", "integer", "float", "boolean", "location" and "duration".
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []auroratypes.ArgumentType{
		String(), Integer(), Float(), Boolean(), Coordinates(), Duration(),
	} {
		// Built-in names are distinct, so registration cannot fail.
		_ = r.Register(t.Name(), t)
	}
	return r
}

// Register adds t under name. Names are case-insensitive. Returns an error if
// the name is empty, t is nil, or the name is already taken.
func (r *Registry) Register(name string, t auroratypes.ArgumentType) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("argument type name cannot be empty")
	}
	if t == nil {
		return fmt.Errorf("argument type %s is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[key]; exists {
		return fmt.Errorf("argument type %s already registered", key)
	}
	r.types[key] = t
	return nil
}

// Get returns the type registered under name.
func (r *Registry) Get(name string) (auroratypes.ArgumentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
