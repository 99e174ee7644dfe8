// Package store persists the catalog and saved queries. Implementations
// handle the database operations while consumers depend only on the Store
// interface.
package store

import (
	"encoding/json"
	"time"
)

// AddOptions configures an add operation.
type AddOptions struct {
	Author  string // Recorded against new entries
	Replace bool   // Overwrite entries whose id already exists, keeping their position
}

// Namespace summarises the entries that share a namespace.
type Namespace struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Entries     int64  `json:"entries"`
}

// SavedQuery is a named search string.
type SavedQuery struct {
	Name      string
	Query     string
	Author    string
	CreatedAt int64 // Unix timestamp of first save
	UpdatedAt int64 // Unix timestamp of the latest save
}

// SavedQueryJSON is the API-friendly representation of a SavedQuery.
type SavedQueryJSON struct {
	Name      string `json:"name"`
	Query     string `json:"query"`
	Author    string `json:"author,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// ToJSON converts a SavedQuery to its API representation with RFC3339
// timestamps.
func (q *SavedQuery) ToJSON() SavedQueryJSON {
	return SavedQueryJSON{
		Name:      q.Name,
		Query:     q.Query,
		Author:    q.Author,
		UpdatedAt: time.Unix(q.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Stats provides aggregate catalog statistics.
type Stats struct {
	Entries      int64 `json:"entries"`
	Namespaces   int64 `json:"namespaces"`
	Tags         int64 `json:"tags"`          // Distinct tag names
	TooltipLines int64 `json:"tooltip_lines"` // Total tooltip lines
	SavedQueries int64 `json:"saved_queries"`
	Authors      int64 `json:"authors"`      // Distinct authors who added entries
	OldestEntry  int64 `json:"oldest_entry"` // Unix timestamp, 0 when empty
	NewestEntry  int64 `json:"newest_entry"` // Unix timestamp, 0 when empty
}
