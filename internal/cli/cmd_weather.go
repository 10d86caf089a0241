package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/nkwalker/agentdb/internal/config"
	"github.com/nkwalker/agentdb/internal/log"
	"github.com/nkwalker/agentdb/internal/weather"
)

func newWeatherCommand(build BuildInfo) *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Serve the weather tool over SSE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigPath: configPath,
				Flags: config.FlagOverrides{
					WeatherListen: &listen,
				},
			})
			if err != nil {
				return err
			}

			logger, err := log.Setup(cfg.Logging)
			if err != nil {
				return err
			}

			logger.Info("starting weather server with SSE transport", "listen", cfg.Weather.Listen)
			mcpServer := weather.NewServer(weather.NewClient(), logger, build.Version)
			return server.NewSSEServer(mcpServer).Start(cfg.Weather.Listen)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to TOML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "Address to serve SSE on (e.g. :8000)")
	return cmd
}
