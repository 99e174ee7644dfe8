// queries.go implements named saved queries.
//
// A query is parsed before it is saved so an oversized or invalid query
// fails at save time rather than on every later run.

package engine

import (
	"context"
	"fmt"

	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/store"
)

// SaveQuery stores query under name.
func (s *Service) SaveQuery(ctx context.Context, name, query, author string) error {
	if _, err := s.Explain(query); err != nil {
		return err
	}
	if author == "" {
		author = DefaultAuthor
	}
	if err := s.store.SaveQuery(ctx, name, query, author); err != nil {
		return err
	}
	s.fireEvent(extension.QueryEvent{Name: name, Query: query, Author: author})
	return nil
}

// SavedQuery returns one saved query.
func (s *Service) SavedQuery(ctx context.Context, name string) (*store.SavedQuery, error) {
	return s.store.SavedQuery(ctx, name)
}

// SavedQueries lists saved queries ordered by name.
func (s *Service) SavedQueries(ctx context.Context) ([]store.SavedQuery, error) {
	return s.store.SavedQueries(ctx)
}

// DeleteQuery removes a saved query.
func (s *Service) DeleteQuery(ctx context.Context, name string) error {
	if err := s.store.DeleteQuery(ctx, name); err != nil {
		return fmt.Errorf("delete query %q: %w", name, err)
	}
	s.fireEvent(extension.QueryEvent{Name: name, Deleted: true})
	return nil
}
