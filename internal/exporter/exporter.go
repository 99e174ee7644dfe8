// Package exporter writes catalog entries to an entry file (YAML or JSON)
// that the importer can read back.
package exporter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/service"
)

// Options configures an export operation.
type Options struct {
	Format    string // yaml or json; empty infers it from the destination, defaulting to yaml
	Query     string // Export only entries matching this query
	Namespace string // Export only this namespace
	Force     bool   // Overwrite an existing file
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported  int    `json:"exported"`
	Path      string `json:"path,omitempty"`      // Empty when written to the writer
	Truncated bool   `json:"truncated,omitempty"` // The query hit limits.max_results
}

// Run exports entries. With dst empty or "-", the file is written to w;
// otherwise it is written to dst and a summary line goes to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result
	toWriter := dst == "" || dst == "-"

	format, err := formatFor(dst, opts.Format, toWriter)
	if err != nil {
		return result, err
	}

	entries, truncated, err := collect(ctx, svc, opts)
	if err != nil {
		return result, err
	}
	result.Exported = len(entries)
	result.Truncated = truncated

	var buf bytes.Buffer
	if err := catalog.Encode(&buf, format, catalog.Document{Entries: entries}); err != nil {
		return result, fmt.Errorf("encoding entries: %w", err)
	}

	if toWriter {
		_, err := w.Write(buf.Bytes())
		return result, err
	}

	if err := writeFile(dst, buf.Bytes(), opts.Force); err != nil {
		return result, err
	}
	result.Path = dst
	fmt.Fprintf(w, "Exported: %d entries -> %s\n", len(entries), dst)
	return result, nil
}

func collect(ctx context.Context, svc service.Service, opts Options) ([]catalog.Entry, bool, error) {
	if opts.Query == "" {
		entries, err := svc.List(ctx, opts.Namespace)
		return entries, false, err
	}
	res, err := svc.Search(ctx, opts.Query, service.SearchOptions{Namespace: opts.Namespace})
	if err != nil {
		return nil, false, err
	}
	return res.Entries, res.Truncated, nil
}

func formatFor(dst, forced string, toWriter bool) (catalog.Format, error) {
	if forced != "" {
		return catalog.ParseFormat(forced)
	}
	if !toWriter {
		if f, ok := catalog.FormatOf(dst); ok {
			return f, nil
		}
	}
	return catalog.FormatYAML, nil
}

// writeFile writes data to dst through an os.Root on its directory so the
// write cannot escape it.
func writeFile(dst string, data []byte, force bool) error {
	dir, name := filepath.Dir(dst), filepath.Base(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", dst, err)
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}
