package catalog

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicate is returned when an entry with the same identifier is
	// already present.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrEmptyID is returned when an entry has no identifier.
	ErrEmptyID = errors.New("entry has no id")
)

// Catalog is an ordered, append-friendly collection of entries. Insertion
// order is the order presented to filtering.
//
// All methods are safe for concurrent use. Scans should work on a Snapshot
// rather than holding the catalog across a filter.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int // id -> position in entries
}

// New creates a catalog holding the given entries in order.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(entries))}
	if err := c.Add(entries...); err != nil {
		return nil, err
	}
	return c, nil
}

// Add appends entries after normalising them. Either all entries are added
// or, on the first invalid or duplicate entry, none are.
func (c *Catalog) Add(entries ...Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(entries))
	normalised := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e = e.Normalise()
		if e.ID == "" {
			return ErrEmptyID
		}
		if _, exists := c.index[e.ID]; exists || seen[e.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicate, e.ID)
		}
		seen[e.ID] = true
		normalised = append(normalised, e)
	}

	for _, e := range normalised {
		c.index[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return nil
}

// Get returns the entry with the given identifier.
func (c *Catalog) Get(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of the entry sequence. Later appends to the
// catalog are not visible through the returned slice.
func (c *Catalog) Snapshot() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
