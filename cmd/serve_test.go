package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "%T", res.Content[0])
	return text.Text, res.IsError
}

func TestMCPServerRegistersTools(t *testing.T) {
	s := newMCPServer()
	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"match", "search", "query"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}

func TestHandleMatch(t *testing.T) {
	out, isErr := callTool(t, handleMatch, map[string]any{"value": `[1,2]`, "types": "string,array"})
	assert.False(t, isErr)
	assert.Equal(t, "[1,2]", out)

	out, isErr = callTool(t, handleMatch, map[string]any{"value": `5`, "types": "string"})
	assert.True(t, isErr)
	assert.Equal(t, "unmatched", out)

	_, isErr = callTool(t, handleMatch, map[string]any{"value": `5`})
	assert.True(t, isErr)
}

func TestHandleSearch(t *testing.T) {
	path := writeFile(t, "doc.json", doc)

	out, isErr := callTool(t, handleSearch, map[string]any{"path": path, "mode": "all-keys", "needle": "id"})
	assert.False(t, isErr)
	assert.Equal(t, "[1,2]", out)

	out, isErr = callTool(t, handleSearch, map[string]any{"path": path, "mode": "key", "needle": "missing"})
	assert.True(t, isErr)
	assert.Equal(t, "not found", out)

	_, isErr = callTool(t, handleSearch, map[string]any{"path": path, "mode": "nearest", "needle": "x"})
	assert.True(t, isErr)
}

func TestHandleQuery(t *testing.T) {
	path := writeFile(t, "doc.json", doc)

	out, isErr := callTool(t, handleQuery, map[string]any{"path": path, "expr": "$.data[*].value"})
	assert.False(t, isErr)
	assert.Equal(t, `["a","b"]`, out)

	_, isErr = callTool(t, handleQuery, map[string]any{"path": path, "expr": "$.data[1"})
	assert.True(t, isErr)
}
