package sections

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-sitebuilder/internal/identity"
)

// Registry is the static catalog mapping a section type key to its
// descriptor. It is populated once during initialization and frozen before
// serving lookups; there is no runtime mutation and no load-order dependence.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]Type
	frozen bool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]Type),
	}
}

// Register adds a type descriptor to the registry. Registering an empty key,
// a duplicate key, or registering after Freeze is a programming error.
func (r *Registry) Register(t Type) error {
	key := canonicalKey(t.Key)
	if key == "" {
		return fmt.Errorf("sections: registry requires a type key")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("sections: registry is frozen, cannot register %q", key)
	}
	if _, exists := r.types[key]; exists {
		return fmt.Errorf("sections: type %q already registered", key)
	}

	t.Key = key
	t.ID = identity.SectionTypeUUID(key)
	r.types[key] = cloneType(t)
	return nil
}

// MustRegister is Register for boot-time wiring where a failure is fatal.
func (r *Registry) MustRegister(t Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Freeze seals the registry. Further Register calls fail.
func (r *Registry) Freeze() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	return r
}

// Get resolves a type descriptor by key.
func (r *Registry) Get(key string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[canonicalKey(key)]
	if !ok {
		return Type{}, false
	}
	return cloneType(t), true
}

// Has reports whether the key names a registered type.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[canonicalKey(key)]
	return ok
}

// List returns all registered descriptors sorted by key.
func (r *Registry) List() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, cloneType(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func canonicalKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
