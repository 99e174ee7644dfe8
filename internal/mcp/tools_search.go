// tools_search.go implements the query tools: search, explain, matchers
// and diff.

package mcp

import (
	"context"

	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/format"
	"github.com/jpl-au/facet/internal/log"
	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchResult is the facet_search response.
type searchResult struct {
	Query      string             `json:"query"`
	Count      int                `json:"count"`
	Truncated  bool               `json:"truncated"`
	Entries    []catalog.Entry    `json:"entries,omitempty"`
	IDs        []string           `json:"ids,omitempty"`
	Highlights []search.Highlight `json:"highlights"`
}

// search handles facet_search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	query := getString(req, "query", "")
	opts := service.SearchOptions{
		Limit:     getInt(req, "limit", 0),
		Namespace: getString(req, "namespace", ""),
	}

	res, err := h.svc.Search(ctx, query, opts)

	count := 0
	if res != nil {
		count = len(res.Entries)
	}
	log.Event("mcp:search", "search").Author("mcp").Query(query).Count(count).Detail("namespace", opts.Namespace).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := searchResult{
		Query:      query,
		Count:      count,
		Truncated:  res.Truncated,
		Highlights: res.Highlights,
	}
	if getBool(req, "ids_only", false) {
		out.IDs = res.IDs()
	} else {
		out.Entries = res.Entries
	}
	return jsonResult(out)
}

// explain handles facet_explain tool calls.
func (h *handlers) explain(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	q, err := h.svc.Explain(query)

	log.Event("mcp:explain", "explain").Author("mcp").Query(query).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"query":      query,
		"terms":      format.Terms(q),
		"highlights": q.Highlights(),
	})
}

// matchers handles facet_matchers tool calls.
func (h *handlers) matchers(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	return jsonResult(format.MatcherInfos(h.svc.Matchers()))
}

// diff handles facet_diff tool calls.
func (h *handlers) diff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	q1, err := req.RequireString("query1")
	if err != nil {
		return mcp.NewToolResultError("query1 is required"), nil //nolint:nilerr
	}
	q2, err := req.RequireString("query2")
	if err != nil {
		return mcp.NewToolResultError("query2 is required"), nil //nolint:nilerr
	}

	r, err := h.svc.Diff(ctx, q1, q2)

	log.Event("mcp:diff", "diff").Author("mcp").Query(q1).Detail("query2", q2).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"old":     r.Old,
		"new":     r.New,
		"removed": r.Removed,
		"added":   r.Added,
		"common":  r.Common,
		"diff":    r.Format(false),
	})
}
