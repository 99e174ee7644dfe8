// import.go implements "facet import" and "facet export".
//
// Both are storeless: import --dry-run validates files before any catalog
// exists, so the catalog is opened only when entries are stored or read.

package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/exporter"
	"github.com/jpl-au/facet/internal/importer"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/jpl-au/facet/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file|dir|->",
		Short: "Import YAML or JSON entry files",
		Long: `Import entries from a YAML or JSON file, every entry file under a
directory (in name order), or stdin ("-", requires --format).

Each file is stored in one transaction. See "facet guide import" for the
file format.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	c.Flags().StringP(extension.FlagFormat, "f", "", "Input format: yaml, json (default: from extension)")
	c.Flags().BoolP(extension.FlagReplace, "r", false, "Overwrite entries whose id exists")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Validate without importing")
	c.Flags().BoolP(extension.FlagIncludeHidden, "H", false, "Include hidden files/dirs")
	return c
}

func runImport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	src := args[0]
	opts := importer.Options{Author: cmd.Author()}
	opts.Format, _ = c.Flags().GetString(extension.FlagFormat)
	opts.Replace, _ = c.Flags().GetBool(extension.FlagReplace)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagIncludeHidden)

	if src == "-" && opts.Format == "" {
		return cmd.PrintJSONError(errors.New("import from stdin requires --format"))
	}

	var svc service.Service
	if !opts.DryRun {
		s, err := cmd.Service()
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		svc = s
		opts.LockPath = repo.LockPath(s.DBPath())
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	var result importer.Result
	var err error
	if src == "-" {
		result, err = importer.RunReader(ctx, w, svc, os.Stdin, "stdin", opts)
	} else {
		result, err = importer.Run(ctx, w, svc, src, opts)
	}

	log.Event("catalog:import", "import").
		Author(cmd.Author()).
		Target(src).
		Count(result.Imported).
		Detail("files", len(result.Files)).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}

	if len(result.Files) == 0 {
		fmt.Fprintf(cmd.Out(), "No entry files found in %q (expected .yaml, .yml or .json)\n", src)
		return nil
	}
	if opts.DryRun {
		fmt.Fprintf(cmd.Out(), "\n%d entries valid in %d file(s)\n", result.Entries, len(result.Files))
		return nil
	}
	fmt.Fprintf(cmd.Out(), "\nImported %d entries from %d file(s)\n", result.Imported, len(result.Files))
	return nil
}

func newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Export entries to a YAML or JSON file",
		Long: `Export entries in the import file format. Without a file, or with
"-", entries are written to stdout.

  facet export items.yaml
  facet export gems.json --query '$c:gems'
  facet export --namespace create -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
	c.Flags().StringP(extension.FlagFormat, "f", "", "Output format: yaml, json (default: from extension, else yaml)")
	c.Flags().StringP(extension.FlagQuery, "q", "", "Export only entries matching this query")
	c.Flags().String(extension.FlagNamespace, "", "Export only this namespace")
	return c
}

func runExport(c *cobra.Command, args []string) error {
	dst := ""
	if len(args) > 0 {
		dst = args[0]
	}
	opts := exporter.Options{Force: cmd.Force()}
	opts.Format, _ = c.Flags().GetString(extension.FlagFormat)
	opts.Query, _ = c.Flags().GetString(extension.FlagQuery)
	opts.Namespace, _ = c.Flags().GetString(extension.FlagNamespace)

	svc, err := cmd.Service()
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	toFile := dst != "" && dst != "-"
	w := cmd.Out()
	if cmd.JSON() && toFile {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, svc, dst, opts)

	log.Event("catalog:export", "export").
		Author(cmd.Author()).
		Target(dst).
		Query(opts.Query).
		Count(result.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	if result.Truncated {
		fmt.Fprintf(os.Stderr, "warning: export truncated to %d entries by limits.max_results\n", result.Exported)
	}
	if cmd.JSON() && toFile {
		return cmd.PrintJSON(result)
	}
	return nil
}
