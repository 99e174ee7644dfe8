// db.go implements "facet db": listing the catalogs of a repository and
// toggling whether each is committed or gitignored. It only touches
// gitignore entries, so it never opens a catalog.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage catalogs",
		Long: `List catalogs or change their local/shared status.

  facet db                    # list all catalogs
  facet db --local            # mark the default catalog as local
  facet db mods --local       # mark facet-mods.db as local
  facet db mods --share       # mark as shared
  facet db --dir /path        # list catalogs in another repository

Local catalogs are not committed. Shared catalogs are.
Without a name, --local and --share act on the default catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalog as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark catalog as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo functions take the .facet directory; empty means discover it.
	dir := cmd.Dir()
	facetDir := ""
	if dir != "" {
		facetDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(facetDir)

		log.Event("core:db", "list").
			Author(cmd.Author()).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	if local {
		err := repo.IgnoreDB(name, facetDir)

		log.Event("core:db", "ignore").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as local\n", repo.DBFileName(name))
		return nil
	}

	if share {
		err := repo.UnignoreDB(name, facetDir)

		log.Event("core:db", "unignore").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as shared\n", repo.DBFileName(name))
		return nil
	}

	ignored, err := repo.IsIgnored(name, facetDir)

	log.Event("core:db", "status").
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	status := "shared"
	if ignored {
		status = "local"
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", repo.DBFileName(name), status)
	return nil
}

// listDBs prints every catalog as "shared" (committed) or "local"
// (gitignored).
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return fmt.Errorf("list catalogs: %w", err)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No catalogs found")
		return nil
	}

	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}
