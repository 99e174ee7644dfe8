// init.go implements "facet init".
//
// Init creates the repository and an empty catalog but no config; config
// is managed separately with "facet config", as in git.

package core

import (
	"errors"
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/engine"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new facet catalog",
		Long: `Creates a .facet/facet.db catalog in the current directory.

Use --db to create additional catalogs:
  facet init --db mods    # creates .facet/facet-mods.db

Use --dir to create in a different directory:
  facet init --dir /path/to/project

Use --local to exclude from git:
  facet init --db scratch --local

Note: init does not create config. Use "facet config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark catalog as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits the current project's .gitignore, which says nothing
	// about a catalog created under --dir.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the catalog elsewhere"))
	}

	err := engine.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"catalog": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised facet catalog in %s\n", loc)
	return nil
}
