// tools_config.go implements facet_config_get and facet_config_set.
//
// A successful set reloads the running service, so matcher prefixes and
// limits change without restarting the server.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles facet_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles facet_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	event := log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value)

	cfg, err := config.Load()
	if err != nil {
		event.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := cfg.Set(key, value); err != nil {
		event.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()
	event.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if h.svc == nil {
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
	}
	if err := h.svc.ReloadConfig(); err != nil {
		log.Event("mcp:config_set", "reload").Author("mcp").Write(err)
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
