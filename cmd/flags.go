/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// the variables, so they never depend on cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/facet/internal/config"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output string
	author string
	force  bool
	db     string
	dir    string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author flag value, falling back to author.name from
// config.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the resolved catalog name.
// Priority: --db flag > FACET_DB env var > empty (default).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv("FACET_DB")
}

// Dir returns the explicit repository directory if set.
// Priority: --dir flag > FACET_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("FACET_DIR")
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's copy), or the
// original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the default author from config. Returns empty
// string when config is missing or has no author set.
func detectAuthor() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Author recorded against changes")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Overwrite existing catalogs and files")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Catalog name (e.g., mods for facet-mods.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Repository directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
