// interfaces.go defines the storage abstraction for the catalog.
//
// The interfaces are granular (Reader, Writer, Querier, Maintainer) so
// consumers depend only on the capabilities they need.

package store

import (
	"context"
	"database/sql"

	"github.com/jpl-au/facet/internal/catalog"
)

// Reader defines read-only catalog operations.
type Reader interface {
	// Entries returns entries in insertion order. A non-empty namespace
	// restricts the result to that namespace.
	Entries(ctx context.Context, namespace string) ([]catalog.Entry, error)

	// Entry returns one entry by id, or ErrNotFound.
	Entry(ctx context.Context, id string) (*catalog.Entry, error)

	// Exists checks entry presence without loading tooltips or tags.
	Exists(ctx context.Context, id string) (bool, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int64, error)

	// Namespaces lists every namespace with its entry count.
	Namespaces(ctx context.Context) ([]Namespace, error)

	// Stats returns aggregate statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that modify the catalog.
type Writer interface {
	// Add stores entries atomically: either all are stored or none are.
	// Returns the number stored.
	Add(ctx context.Context, entries []catalog.Entry, opts AddOptions) (int, error)

	// Remove deletes an entry with its tooltips and tags.
	Remove(ctx context.Context, id string) error
}

// Querier manages saved queries.
type Querier interface {
	// SaveQuery creates or replaces a named query.
	SaveQuery(ctx context.Context, name, query, author string) error

	// SavedQuery returns one saved query, or ErrQueryNotFound.
	SavedQuery(ctx context.Context, name string) (*SavedQuery, error)

	// SavedQueries returns all saved queries ordered by name.
	SavedQueries(ctx context.Context) ([]SavedQuery, error)

	// DeleteQuery removes a saved query, or returns ErrQueryNotFound.
	DeleteQuery(ctx context.Context, name string) error
}

// Maintainer defines operations for database lifecycle.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for extensions needing custom tables.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error
}

// Store defines the persistence interface for the catalog.
type Store interface {
	Reader
	Writer
	Querier
	Maintainer
}
