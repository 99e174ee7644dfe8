// entries.go implements catalog reads and writes.
//
// Extensions are notified only after a write has committed.

package engine

import (
	"context"
	"fmt"

	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/store"
)

// Add stores entries in one transaction.
func (s *Service) Add(ctx context.Context, entries []catalog.Entry, author string, replace bool) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	if author == "" {
		author = DefaultAuthor
	}
	n, err := s.store.Add(ctx, entries, store.AddOptions{Author: author, Replace: replace})
	if err != nil {
		return 0, fmt.Errorf("add: %w", err)
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Normalise().ID
	}
	s.fireEvent(extension.EntryAddEvent{IDs: ids, Author: author, Replaced: replace})
	return n, nil
}

// Remove deletes an entry.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove %q: %w", id, err)
	}
	s.fireEvent(extension.EntryRemoveEvent{ID: id})
	return nil
}

// List returns entries in catalog order, optionally for one namespace.
func (s *Service) List(ctx context.Context, namespace string) ([]catalog.Entry, error) {
	return s.store.Entries(ctx, namespace)
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, id string) (*catalog.Entry, error) {
	return s.store.Entry(ctx, id)
}

// Exists reports whether an entry is stored.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

// Namespaces lists namespaces with entry counts.
func (s *Service) Namespaces(ctx context.Context) ([]store.Namespace, error) {
	return s.store.Namespaces(ctx)
}
