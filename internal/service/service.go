// Package service defines the shared interface for catalog and search
// operations. Commands and extensions depend on this interface rather than
// the concrete engine, so they can be tested against fakes.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/diff"
	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/store"
)

// SearchOptions configures a single search.
type SearchOptions struct {
	// Limit caps the number of returned entries (0 = use limits.max_results).
	// A limit above the configured maximum is clamped to it.
	Limit int

	// Namespace restricts the scan to one namespace before filtering.
	Namespace string

	// NoPrefilter disables the literal prefilter for this search. The
	// result is the same either way.
	NoPrefilter bool
}

// Result is the outcome of a search.
type Result struct {
	Query      search.Query       // Parsed query, for highlighting and explain output
	Entries    []catalog.Entry    // Surviving entries in catalog order
	Highlights []search.Highlight // Grammar spans of the raw query
	Scanned    int                // Entries considered
	Truncated  bool               // More entries matched than were returned
}

// IDs returns the identifiers of the result entries in order.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		ids[i] = e.ID
	}
	return ids
}

// Service defines all catalog and search operations.
//
// Extensions obtain a Service through extension.Context. Commands that open
// one themselves must call Close when done.
//
// Example:
//
//	svc, err := engine.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Search(ctx, "@minecraft -stick", service.SearchOptions{})
type Service interface {
	// Close checkpoints and releases database resources.
	Close() error

	// Search parses query, filters the stored catalog with it and returns
	// the surviving entries in catalog order. An empty query returns every
	// entry. Returns validate.ErrQueryTooLong for oversized queries.
	Search(ctx context.Context, query string, opts SearchOptions) (*Result, error)

	// Explain parses query without touching the catalog.
	Explain(query string) (search.Query, error)

	// Matchers returns the registered matchers in registration order.
	Matchers() []search.Matcher

	// Add stores entries atomically. With replace set, existing ids are
	// overwritten in place; otherwise an existing id fails the batch with
	// store.ErrAlreadyExists. Returns the number stored.
	Add(ctx context.Context, entries []catalog.Entry, author string, replace bool) (int, error)

	// Remove deletes an entry. Returns store.ErrNotFound if absent.
	Remove(ctx context.Context, id string) error

	// List returns stored entries in catalog order. Use "" for every
	// namespace.
	List(ctx context.Context, namespace string) ([]catalog.Entry, error)

	// Get returns one entry by id, or store.ErrNotFound.
	Get(ctx context.Context, id string) (*catalog.Entry, error)

	// Exists checks entry presence without loading tooltips or tags.
	Exists(ctx context.Context, id string) (bool, error)

	// Namespaces lists namespaces with their entry counts.
	Namespaces(ctx context.Context) ([]store.Namespace, error)

	// SaveQuery stores query under name, replacing any previous query of
	// that name. The query must parse within limits.max_query.
	SaveQuery(ctx context.Context, name, query, author string) error

	// SavedQuery returns a saved query, or store.ErrQueryNotFound.
	SavedQuery(ctx context.Context, name string) (*store.SavedQuery, error)

	// SavedQueries lists saved queries ordered by name.
	SavedQueries(ctx context.Context) ([]store.SavedQuery, error)

	// DeleteQuery removes a saved query, or returns store.ErrQueryNotFound.
	DeleteQuery(ctx context.Context, name string) error

	// Diff compares the result identifiers of two queries. Limits do not
	// apply so the comparison covers both full result sets.
	Diff(ctx context.Context, q1, q2 string) (diff.Result, error)

	// Stats returns aggregate catalog statistics.
	Stats(ctx context.Context) (*store.Stats, error)

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// DB returns the underlying SQLite connection for extensions creating
	// their own tables. Do not close it directly; use Close.
	DB() *sql.DB
}
