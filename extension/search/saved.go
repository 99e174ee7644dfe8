// saved.go implements named queries: "facet save", "facet saved", and the
// facet_save / facet_saved MCP tools. A saved query stores the raw query
// text, so it is re-parsed with the matchers in force when it runs.

package search

import (
	"context"
	"fmt"

	"github.com/jpl-au/facet/cmd"
	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <query>",
		Short: "Save a query under a name",
		Long: `Save a query; run it later with "facet search --saved <name>".
Saving an existing name replaces its query.

  facet save gems '$c:gems | #gem'`,
		Args: cobra.ExactArgs(2),
		RunE: e.runSave,
	}
}

func (e *Extension) runSave(c *cobra.Command, args []string) error {
	name, query := args[0], args[1]
	err := e.svc.SaveQuery(c.Context(), name, query, cmd.Author())

	log.Event("search:save", "save").Author(cmd.Author()).Target(name).Query(query).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("save %q: %w", name, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"name": name, "query": query})
	}
	fmt.Fprintf(cmd.Out(), "Saved: %s\n", name)
	return nil
}

func (e *Extension) newSavedCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "saved",
		Short: "List saved queries",
		Long: `List saved queries, or delete one with --delete.

  facet saved
  facet saved --delete gems`,
		Args: cobra.NoArgs,
		RunE: e.runSaved,
	}
	c.Flags().StringP(extension.FlagDelete, "d", "", "Delete the named query")
	return c
}

func (e *Extension) runSaved(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	if name, _ := c.Flags().GetString(extension.FlagDelete); name != "" {
		err := e.svc.DeleteQuery(ctx, name)
		log.Event("search:saved", "delete").Author(cmd.Author()).Target(name).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("delete %q: %w", name, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"deleted": name})
		}
		fmt.Fprintf(cmd.Out(), "Deleted: %s\n", name)
		return nil
	}

	qs, err := e.svc.SavedQueries(ctx)

	log.Event("search:saved", "list").Author(cmd.Author()).Count(len(qs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("saved: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(savedJSON(qs))
	}
	if len(qs) == 0 {
		fmt.Fprintln(cmd.Out(), "No saved queries")
		return nil
	}
	return format.SavedQueries(cmd.Out(), qs)
}

func savedJSON(qs []store.SavedQuery) []store.SavedQueryJSON {
	out := make([]store.SavedQueryJSON, len(qs))
	for i := range qs {
		out[i] = qs[i].ToJSON()
	}
	return out
}

// savedQueryTools exposes saved queries to MCP clients.
func savedQueryTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("facet_save",
				mcp.WithDescription("Save a query under a name, replacing any query of that name"),
				mcp.WithString("name", mcp.Required(), mcp.Description("Query name")),
				mcp.WithString("query", mcp.Required(), mcp.Description("Query text")),
				mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
			),
			Handler: saveTool,
		},
		{
			Tool: mcp.NewTool("facet_saved",
				mcp.WithDescription("List saved queries. Run one with facet_search using its query text."),
			),
			Handler: savedTool,
		},
	}
}

func saveTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	err = extCtx.Service().SaveQuery(ctx, name, query, author)

	log.Event("mcp:save", "save").Author(author).Target(name).Query(query).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("saved " + name), nil
}

func savedTool(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	qs, err := extCtx.Service().SavedQueries(ctx)

	log.Event("mcp:saved", "list").Author("mcp").Count(len(qs)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := store.MarshalJSON(savedJSON(qs))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
