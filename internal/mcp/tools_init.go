// tools_init.go implements facet_init, the only tool that works before a
// catalog exists.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/facet/internal/engine"
	"github.com/jpl-au/facet/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initCatalog handles facet_init tool calls.
func (h *handlers) initCatalog(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("catalog already initialised"), nil
	}

	local := getBool(req, "local", false)

	err := engine.Init(false, h.db, local, "")

	log.Event("mcp:init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.open(); err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalog: " + err.Error()), nil
	}

	slog.Info("catalog initialised", "local", local)

	if local {
		return mcp.NewToolResultText("catalog initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("catalog initialised"), nil
}
