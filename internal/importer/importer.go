// Package importer loads entry files (YAML or JSON) into a catalog.
//
// Each file is stored in one transaction: a file either imports completely
// or not at all. Files in a directory are imported in name order and an
// error stops the run, leaving earlier files imported.
//
// Design: Only one import per repository runs at a time. The lock is an
// advisory file lock next to the catalog, so a crashed import never leaves
// a stale lock behind.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/progress"
	"github.com/jpl-au/facet/internal/service"
	"github.com/jpl-au/facet/internal/validate"
)

// ErrLocked is returned when another import holds the repository lock.
var ErrLocked = errors.New("another import is in progress")

// Options configures an import operation.
type Options struct {
	Format   string // Force a format (yaml, json); empty infers it from the extension
	Replace  bool   // Overwrite entries whose id already exists
	Hidden   bool   // Include hidden files/directories
	DryRun   bool   // Decode and validate without storing
	Author   string // Author recorded against imported entries
	LockPath string // Repository import lock; empty disables locking
}

// Result contains the outcome of an import operation.
type Result struct {
	Files    []string `json:"files"`    // Files read, in import order
	Entries  int      `json:"entries"`  // Entries decoded
	Imported int      `json:"imported"` // Entries stored (0 on dry run)
}

// Lock takes the import lock at path without waiting. The returned function
// releases it.
func Lock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	l := flock.New(path)
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, path)
	}
	return func() { _ = l.Unlock() }, nil
}

func lock(opts Options) (func(), error) {
	if opts.LockPath == "" || opts.DryRun {
		return func() {}, nil
	}
	return Lock(opts.LockPath)
}

// Run imports a file, or every entry file under a directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result

	info, err := os.Stat(src)
	if err != nil {
		return result, err
	}

	var files []string
	if info.IsDir() {
		root, err := os.OpenRoot(src)
		if err != nil {
			return result, fmt.Errorf("opening source root: %w", err)
		}
		defer root.Close()

		rels, err := scanRoot(root, "", opts.Hidden)
		if err != nil {
			return result, fmt.Errorf("scanning %s: %w", src, err)
		}
		for _, rel := range rels {
			files = append(files, filepath.Join(src, rel))
		}
	} else {
		files = []string{src}
	}
	if len(files) == 0 {
		return result, nil
	}

	unlock, err := lock(opts)
	if err != nil {
		return result, err
	}
	defer unlock()

	prog := progress.New("Importing", len(files)).Unit("files")
	defer prog.Done()

	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", file, err)
		}
		err = importFile(ctx, w, svc, f, file, opts, &result)
		f.Close()
		if err != nil {
			return result, err
		}
		prog.Increment()
		prog.Print()
	}
	return result, nil
}

// RunReader imports one entry stream, such as stdin. name labels the
// stream in output and errors.
func RunReader(ctx context.Context, w io.Writer, svc service.Service, r io.Reader, name string, opts Options) (Result, error) {
	var result Result
	unlock, err := lock(opts)
	if err != nil {
		return result, err
	}
	defer unlock()

	err = importFile(ctx, w, svc, r, name, opts, &result)
	return result, err
}

func importFile(ctx context.Context, w io.Writer, svc service.Service, r io.Reader, name string, opts Options, result *Result) error {
	format, err := formatFor(name, opts.Format)
	if err != nil {
		return err
	}
	entries, err := Read(r, format)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	result.Files = append(result.Files, name)
	result.Entries += len(entries)

	if opts.DryRun {
		fmt.Fprintf(w, "Would import: %s (%d entries)\n", name, len(entries))
		return nil
	}

	n, err := svc.Add(ctx, entries, opts.Author, opts.Replace)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	result.Imported += n
	fmt.Fprintf(w, "Imported: %s (%d entries)\n", name, n)
	return nil
}

// Read decodes and validates one entry file. Entries come back resolved
// against the document namespace and normalised.
func Read(r io.Reader, f catalog.Format) ([]catalog.Entry, error) {
	spin := progress.NewSpinner("Decoding")
	spin.Start()
	doc, err := catalog.Decode(r, f)
	spin.Stop()
	if err != nil {
		return nil, err
	}

	entries := doc.Resolve()
	for i, e := range entries {
		if err := validate.Entry(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return entries, nil
}

func formatFor(name, forced string) (catalog.Format, error) {
	if forced != "" {
		return catalog.ParseFormat(forced)
	}
	if f, ok := catalog.FormatOf(name); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %s (use --format)", catalog.ErrUnknownFormat, name)
}

// scanRoot recursively finds entry files within an os.Root, sorted by
// path. Returns relative paths from the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	var files []string

	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		if entry.IsDir() {
			sub, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		} else if _, ok := catalog.FormatOf(name); ok {
			files = append(files, rel)
		}
	}
	return files, nil
}
