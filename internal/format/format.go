// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// catalog and search logic while this package handles presentation:
// column alignment, namespace trees, query highlighting and explain tables.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/store"
)

// IDs prints entry ids, one per line.
func IDs(w io.Writer, entries []catalog.Entry) error {
	for _, e := range entries {
		fmt.Fprintln(w, e.ID)
	}
	return nil
}

// List prints entries as an id column followed by the display name.
func List(w io.Writer, entries []catalog.Entry) error {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.ID))
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %s\n", width, e.ID, e.Name)
	}
	return nil
}

// Long prints entries with namespace, tag and tooltip counts.
//
// Fixed-width count columns come first; the variable-length id and name
// go last so their widths do not disturb the alignment of the rest.
func Long(w io.Writer, entries []catalog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	maxNS := len("NAMESPACE")
	maxID := len("ID")
	for _, e := range entries {
		maxNS = max(maxNS, len(e.Namespace))
		maxID = max(maxID, len(e.ID))
	}

	fmt.Fprintf(w, "%-*s  %4s  %4s  %-*s  %s\n", maxNS, "NAMESPACE", "TAGS", "TIPS", maxID, "ID", "NAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %4d  %4d  %-*s  %s\n", maxNS, e.Namespace, len(e.Tags), len(e.Tooltip), maxID, e.ID, e.Name)
	}
	return nil
}

// Tree prints entries grouped by namespace, with "/" in identifier paths
// forming nested levels.
func Tree(w io.Writer, entries []catalog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		isEntry  bool
	}

	root := &node{children: make(map[string]*node)}
	for _, e := range entries {
		parts := []string{e.Namespace}
		parts = append(parts, strings.Split(catalog.PathOf(e.ID), "/")...)

		current := root
		for i, part := range parts {
			if current.children[part] == nil {
				current.children[part] = &node{children: make(map[string]*node)}
			}
			current = current.children[part]
			if i == len(parts)-1 {
				current.isEntry = true
			}
		}
	}

	var printNode func(n *node, prefix string, top bool)
	printNode = func(n *node, prefix string, top bool) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}
			suffix := ""
			if !child.isEntry && len(child.children) > 0 {
				suffix = "/"
			}
			if top {
				connector, suffix = "", ":"
				if name == "" {
					name = "(none)"
				}
			}

			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			switch {
			case top:
			case last:
				pfx += "    "
			default:
				pfx += "│   "
			}
			if len(child.children) > 0 {
				printNode(child, pfx, false)
			}
		}
	}

	printNode(root, "", true)
	return nil
}

// Entry prints every field of one entry.
func Entry(w io.Writer, e catalog.Entry) error {
	fmt.Fprintf(w, "ID:        %s\n", e.ID)
	fmt.Fprintf(w, "Name:      %s\n", e.Name)
	ns := e.Namespace
	if e.NamespaceName != "" {
		ns += " (" + e.NamespaceName + ")"
	}
	fmt.Fprintf(w, "Namespace: %s\n", ns)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", strings.Join(e.Tags, ", "))
	}
	if len(e.Tooltip) > 0 {
		fmt.Fprintln(w, "Tooltip:")
		for _, line := range e.Tooltip {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

// Namespaces prints namespaces with their entry counts.
func Namespaces(w io.Writer, nss []store.Namespace) error {
	for _, ns := range nss {
		name := ns.Name
		if name == "" {
			name = "(none)"
		}
		if ns.DisplayName != "" {
			name += " (" + ns.DisplayName + ")"
		}
		fmt.Fprintf(w, "%6d  %s\n", ns.Entries, name)
	}
	return nil
}
