package cmd

import (
	"context"
	"encoding/json"

	"github.com/agentic-research/shapekit/search"
	"github.com/agentic-research/shapekit/union"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

const serverVersion = "0.1.0"

func newServeCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve match, search and query as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.ServeStdio(newMCPServer())
		},
	}
}

func newMCPServer() *server.MCPServer {
	s := server.NewMCPServer("shapekit", serverVersion, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("match",
		mcp.WithDescription("Check a JSON value against a union of type names. Returns the value when it matches."),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON value; anything that is not valid JSON is taken as a string")),
		mcp.WithString("types", mcp.Required(), mcp.Description("Comma-separated type names, e.g. string,array")),
	), handleMatch)

	s.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Search a JSON, YAML or HCL document for keys or values."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
		mcp.WithString("mode", mcp.Required(), mcp.Enum("key", "all-keys", "value", "all-values")),
		mcp.WithString("needle", mcp.Required(), mcp.Description("Key name, or value parsed as JSON when possible")),
	), handleSearch)

	s.AddTool(mcp.NewTool("query",
		mcp.WithDescription("Evaluate a JSONPath expression against a document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path")),
		mcp.WithString("expr", mcp.Required(), mcp.Description("JSONPath expression, e.g. $.data[*].id")),
	), handleQuery)

	return s
}

// Tool failures are reported in the result so the client sees them; the
// returned error is reserved for protocol problems.
func toolResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleMatch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("value")
	if err != nil {
		return toolResult(nil, err)
	}
	types, err := req.RequireString("types")
	if err != nil {
		return toolResult(nil, err)
	}
	descriptors, err := union.ParseList(types)
	if err != nil {
		return toolResult(nil, err)
	}
	res, err := union.Match(parseValue(value), descriptors...)
	if err == nil && !res.Matched() {
		err = errUnmatched
	}
	v, _ := res.Value()
	return toolResult(v, err)
}

func handleSearch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return toolResult(nil, err)
	}
	mode, err := req.RequireString("mode")
	if err != nil {
		return toolResult(nil, err)
	}
	needle, err := req.RequireString("needle")
	if err != nil {
		return toolResult(nil, err)
	}
	fn, ok := searchModes[mode]
	if !ok {
		return mcp.NewToolResultError("unknown search mode " + mode), nil
	}
	tree, err := loadTree(path)
	if err != nil {
		return toolResult(nil, err)
	}
	return toolResult(fn(tree, needle))
}

func handleQuery(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return toolResult(nil, err)
	}
	expr, err := req.RequireString("expr")
	if err != nil {
		return toolResult(nil, err)
	}
	tree, err := loadTree(path)
	if err != nil {
		return toolResult(nil, err)
	}
	return toolResult(search.Query(tree, expr))
}
