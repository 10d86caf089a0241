package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nkwalker/agentdb/internal/app"
)

// QueryTools exposes the read-only safe-query path.
type QueryTools struct {
	gate *app.QueryGate
	log  *slog.Logger
}

func NewQueryTools(gate *app.QueryGate, log *slog.Logger) *QueryTools {
	return &QueryTools{gate: gate, log: log}
}

func (t *QueryTools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("execute_safe_query",
		mcp.WithDescription("Execute a safe SQL query (READ-ONLY for safety). "+
			"Example: execute_safe_query(\"SELECT * FROM users WHERE age > 25 ORDER BY name LIMIT 10\")"),
		mcp.WithString("query", mcp.Required(), mcp.Description("The SQL query to execute")),
	), t.handleSafeQuery)
}

func (t *QueryTools) handleSafeQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strArg(req, "query", "")
	t.log.InfoContext(ctx, "executing safe query")

	rs, err := t.gate.Execute(ctx, query)
	switch {
	case errors.Is(err, app.ErrUnsafeQuery):
		return mcp.NewToolResultText("For security reasons, this tool only allows SELECT queries"), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error executing query: %v", err)), nil
	}

	if len(rs.Columns) == 0 {
		return mcp.NewToolResultText("Query executed successfully"), nil
	}
	if rs.Empty() {
		return mcp.NewToolResultText("Query executed successfully, but returned no results"), nil
	}
	return mcp.NewToolResultText(truncate(renderResultSet(rs), maxSafeQueryChars)), nil
}
