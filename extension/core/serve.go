// serve.go implements "facet serve", which blocks serving MCP requests over
// stdio. Serve is storeless: the server opens the catalog itself and can
// start before one exists.

package core

import (
	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific catalog:
  facet serve --db mods    # serve facet-mods.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(cmd.DB())
		},
	}
}
