// document.go reads and writes entry files.
//
// An entry file is YAML or JSON. It holds either a bare list of entries or
// a document with a default namespace:
//
//	namespace: create
//	namespace_name: Create
//	entries:
//	  - id: shaft
//	    name: Shaft
//
// Entries whose id has no namespace take the document namespace, so the
// entry above is stored as "create:shaft".

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an entry file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported file format.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (use yaml or json)", ErrUnknownFormat, s)
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f, err == nil
}

// Document is the on-disk form of a set of entries.
type Document struct {
	Namespace     string  `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	NamespaceName string  `yaml:"namespace_name,omitempty" json:"namespace_name,omitempty"`
	Entries       []Entry `yaml:"entries" json:"entries"`
}

// Resolve returns the document entries with the document namespace applied
// to ids without one, normalised. Only entries that end up in the document
// namespace inherit its display name.
func (d Document) Resolve() []Entry {
	out := make([]Entry, len(d.Entries))
	for i, e := range d.Entries {
		if d.Namespace != "" {
			id := strings.TrimSpace(e.ID)
			if id != "" && !strings.Contains(id, ":") {
				e.ID = d.Namespace + ":" + id
			}
		}
		e = e.Normalise()
		if d.Namespace != "" && e.NamespaceName == "" && e.Namespace == d.Namespace {
			e.NamespaceName = d.NamespaceName
		}
		out[i] = e
	}
	return out
}

// Decode reads an entry file. Both a bare list and a Document are accepted.
func Decode(r io.Reader, f Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	switch f {
	case FormatYAML:
		err = decodeYAML(data, &doc)
	case FormatJSON:
		err = decodeJSON(data, &doc)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return doc, nil
}

func decodeYAML(data []byte, doc *Document) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) == 0 {
		return nil // empty file
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		return node.Content[0].Decode(&doc.Entries)
	}
	return node.Content[0].Decode(doc)
}

func decodeJSON(data []byte, doc *Document) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &doc.Entries)
	}
	return json.Unmarshal(trimmed, doc)
}

// Encode writes entries as a Document.
func Encode(w io.Writer, f Format, doc Document) error {
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
