// registry.go holds the ordered set of matchers a query is parsed against.
//
// Registration order matters: when one matcher's prefix is itself a prefix
// of another's (e.g. "@" and "@mod:"), the first registered matcher whose
// grammar applies wins. There is no longest-match resolution.

package search

import "sync"

// Registry holds matchers in registration order.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Matcher
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Matcher)}
}

// Register adds a matcher. It panics if a matcher with the same name is
// already registered; registration happens once at startup and a duplicate
// name is a programming error.
func (r *Registry) Register(m Matcher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, exists := r.byName[name]; exists {
		panic("matcher already registered: " + name)
	}
	r.byName[name] = m
	r.order = append(r.order, name)
}

// All returns all matchers in registration order.
func (r *Registry) All() []Matcher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Matcher, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Get returns the named matcher, or nil if none is registered.
func (r *Registry) Get(name string) Matcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Names returns matcher names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered matchers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
