package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tools exposes the weather lookup as an MCP tool. Like the database tools,
// every failure degrades to a readable string result.
type Tools struct {
	client *Client
	log    *slog.Logger
}

func NewTools(client *Client, log *slog.Logger) *Tools {
	return &Tools{client: client, log: log}
}

func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_weather",
		mcp.WithDescription("Get current weather for the specified location."),
		mcp.WithString("location", mcp.Required(), mcp.Description("City or place name")),
	), t.handleGetWeather)
}

func (t *Tools) handleGetWeather(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, _ := req.GetArguments()["location"].(string)
	t.log.InfoContext(ctx, "weather lookup", "location", location)

	conditions, err := t.client.Current(ctx, location)
	switch {
	case errors.Is(err, ErrLocationNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Sorry, I couldn't find the location: %s", location)), nil
	case errors.Is(err, ErrNoCurrentData):
		return mcp.NewToolResultText(fmt.Sprintf("Sorry, I couldn't retrieve weather data for %s", location)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Sorry, I couldn't retrieve the weather for %s. Error: %v", location, err)), nil
	}
	return mcp.NewToolResultText(conditions.Report()), nil
}

// NewServer assembles the standalone weather MCP server.
func NewServer(client *Client, log *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer("Weather", version, server.WithToolCapabilities(false))
	NewTools(client, log).Register(s)
	return s
}
