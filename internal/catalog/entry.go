// Package catalog holds the searchable entries that the search engine
// filters. Entries are immutable once added; the catalog owns them and hands
// out snapshots so a scan never observes a concurrent append.
package catalog

import "strings"

// Entry is one searchable catalog item, such as an item or ingredient.
type Entry struct {
	ID            string   `yaml:"id" json:"id"`                                             // Stable identity (e.g. "minecraft:stick")
	Name          string   `yaml:"name" json:"name"`                                         // Display name
	Namespace     string   `yaml:"namespace,omitempty" json:"namespace,omitempty"`           // Source or mod id
	NamespaceName string   `yaml:"namespace_name,omitempty" json:"namespace_name,omitempty"` // Human readable source name
	Tooltip       []string `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`               // Tooltip lines
	Tags          []string `yaml:"tags,omitempty" json:"tags,omitempty"`                     // Tag names
}

// NamespaceOf returns the namespace part of an identifier of the form
// "namespace:path". Identifiers without a colon have no namespace.
func NamespaceOf(id string) string {
	ns, _, ok := strings.Cut(id, ":")
	if !ok {
		return ""
	}
	return ns
}

// PathOf returns the part of an identifier after the namespace separator,
// or the whole identifier if it has none.
func PathOf(id string) string {
	_, p, ok := strings.Cut(id, ":")
	if !ok {
		return id
	}
	return p
}

// Normalise fills derived fields: the namespace comes from the identifier
// when unset, and the name falls back to the identifier path.
func (e Entry) Normalise() Entry {
	e.ID = strings.TrimSpace(e.ID)
	if e.Namespace == "" {
		e.Namespace = NamespaceOf(e.ID)
	}
	if e.Name == "" {
		e.Name = PathOf(e.ID)
	}
	return e
}

// Facets returns every searchable text facet of the entry in a fixed order:
// name, identifier, namespace, namespace name, tooltip lines, then tags.
func (e Entry) Facets() []string {
	out := make([]string, 0, 4+len(e.Tooltip)+len(e.Tags))
	out = append(out, e.Name, e.ID, e.Namespace, e.NamespaceName)
	out = append(out, e.Tooltip...)
	out = append(out, e.Tags...)
	return out
}
