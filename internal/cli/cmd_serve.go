package cli

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/nkwalker/agentdb/internal/config"
	"github.com/nkwalker/agentdb/internal/log"
	"github.com/nkwalker/agentdb/internal/mcptools"
	"github.com/nkwalker/agentdb/internal/storage"
)

func newServeCommand(build BuildInfo) *cobra.Command {
	var (
		configPath string
		dbPath     string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the database tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigPath: configPath,
				Flags: config.FlagOverrides{
					DatabasePath: &dbPath,
					LogLevel:     &logLevel,
				},
			})
			if err != nil {
				return err
			}

			logger, err := log.Setup(cfg.Logging)
			if err != nil {
				return err
			}

			store, err := storage.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer store.Close()

			logger.Info("starting database server with STDIO transport", "db", store.Path())
			mcpServer := mcptools.NewDatabaseServer(store, logger, build.Version)
			return server.ServeStdio(mcpServer)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to TOML config file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return cmd
}
