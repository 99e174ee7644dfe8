// registry.go holds the process-wide extension registry.
//
// Extensions register from init, before main runs. A duplicate name is a
// programming error and panics, the same contract as database/sql.Register.
// Registration order is kept so commands and tools appear in a stable order.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string
)

// Register adds an extension. It panics if the name is already taken.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}
	registry[name] = e
	order = append(order, name)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns the named extension, or nil.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the registered names in registration order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}
