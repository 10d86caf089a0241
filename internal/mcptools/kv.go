package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nkwalker/agentdb/internal/storage"
)

// KeyValueTools exposes the fixed-schema key-value store.
type KeyValueTools struct {
	repo storage.KeyValueRepository
	log  *slog.Logger
}

func NewKeyValueTools(repo storage.KeyValueRepository, log *slog.Logger) *KeyValueTools {
	return &KeyValueTools{repo: repo, log: log}
}

func (t *KeyValueTools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("store_value",
		mcp.WithDescription("Store a value with the given key in the database."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Key to store the value under")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to store")),
	), t.handleStoreValue)

	s.AddTool(mcp.NewTool("get_value",
		mcp.WithDescription("Retrieve a value for the given key from the database."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Key to look up")),
	), t.handleGetValue)

	s.AddTool(mcp.NewTool("list_keys",
		mcp.WithDescription("List all available keys in the database."),
	), t.handleListKeys)
}

func (t *KeyValueTools) handleStoreValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := strArg(req, "key", "")
	value := strArg(req, "value", "")
	t.log.InfoContext(ctx, "storing value", "key", key, "value", value)

	created, err := t.repo.Store(ctx, key, value)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error storing value: %v", err)), nil
	}
	if created {
		return mcp.NewToolResultText(fmt.Sprintf("Stored new value for key '%s'", key)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated value for key '%s'", key)), nil
}

func (t *KeyValueTools) handleGetValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := strArg(req, "key", "")
	t.log.InfoContext(ctx, "retrieving value", "key", key)

	value, err := t.repo.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("No value found for key '%s'", key)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error retrieving value: %v", err)), nil
	}
	return mcp.NewToolResultText(value), nil
}

func (t *KeyValueTools) handleListKeys(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys, err := t.repo.ListKeys(ctx)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error listing keys: %v", err)), nil
	}
	if len(keys) == 0 {
		return mcp.NewToolResultText("No keys found in the database"), nil
	}
	return mcp.NewToolResultText("Available keys: " + strings.Join(keys, ", ")), nil
}
