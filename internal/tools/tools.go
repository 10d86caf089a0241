//go:build tools

package tools

import (
	_ "github.com/google/uuid"
	_ "github.com/mark3labs/mcp-go/mcp"
	_ "github.com/pelletier/go-toml/v2"
	_ "github.com/spf13/cobra"
	_ "gopkg.in/natefinch/lumberjack.v2"
	_ "modernc.org/sqlite"
)
