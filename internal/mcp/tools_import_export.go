// tools_import_export.go implements facet_import and facet_export, the
// tools that touch the filesystem outside the catalog.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/facet/internal/exporter"
	"github.com/jpl-au/facet/internal/importer"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
)

// importEntries handles facet_import tool calls.
func (h *handlers) importEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	opts := importer.Options{
		Format:   getString(req, "format", ""),
		Replace:  getBool(req, "replace", false),
		Hidden:   getBool(req, "hidden", false),
		DryRun:   getBool(req, "dry_run", false),
		Author:   author,
		LockPath: repo.LockPath(h.svc.DBPath()),
	}

	result, err := importer.Run(ctx, io.Discard, h.svc, path, opts)

	log.Event("mcp:import", "import").Author(author).Target(path).Count(result.Imported).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"files":    result.Files,
		"entries":  result.Entries,
		"imported": result.Imported,
		"dry_run":  opts.DryRun,
	})
}

// exportEntries handles facet_export tool calls.
func (h *handlers) exportEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	dest, err := req.RequireString("dest")
	if err != nil {
		return mcp.NewToolResultError("dest is required"), nil //nolint:nilerr
	}
	if dest == "-" {
		return mcp.NewToolResultError("dest must be a file path"), nil
	}

	opts := exporter.Options{
		Format:    getString(req, "format", ""),
		Query:     getString(req, "query", ""),
		Namespace: getString(req, "namespace", ""),
		Force:     getBool(req, "force", false),
	}

	result, err := exporter.Run(ctx, io.Discard, h.svc, dest, opts)

	log.Event("mcp:export", "export").Author("mcp").Target(dest).Query(opts.Query).Count(result.Exported).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}
