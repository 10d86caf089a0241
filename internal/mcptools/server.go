package mcptools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nkwalker/agentdb/internal/app"
	"github.com/nkwalker/agentdb/internal/storage"
)

// NewDatabaseServer assembles the MCP server carrying the full database tool
// surface. Every handler runs through a logging middleware that tags the
// invocation with a correlation id.
func NewDatabaseServer(store *storage.Store, log *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer("Database", version,
		server.WithToolCapabilities(false),
		server.WithToolHandlerMiddleware(loggingMiddleware(log)),
	)

	tableSvc := app.NewTableService(store.Tables, store.Registry)
	gate := app.NewQueryGate(store.Tables)

	NewTableTools(tableSvc, log).Register(s)
	NewQueryTools(gate, log).Register(s)
	NewKeyValueTools(store.KeyValues, log).Register(s)
	NewNoteTools(store.Notes, log).Register(s)

	return s
}

func loggingMiddleware(log *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			callID := uuid.NewString()
			start := time.Now()
			log.InfoContext(ctx, "tool call", "tool", req.Params.Name, "call_id", callID)

			result, err := next(ctx, req)

			log.InfoContext(ctx, "tool call done",
				"tool", req.Params.Name,
				"call_id", callID,
				"duration", time.Since(start),
				"error", err != nil)
			return result, err
		}
	}
}
