package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(LoadOptions{Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, "agent_database.db", cfg.Database.Path)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, 10, cfg.Logging.MaxSizeMB)
	require.Equal(t, 5, cfg.Logging.MaxFiles)
	require.Equal(t, ":8000", cfg.Weather.Listen)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfigFile(t, `
[database]
path = "/tmp/custom.db"

[logging]
level = "debug"
max_files = 3

[weather]
listen = ":9100"
`)

	cfg, err := Load(LoadOptions{ConfigPath: cfgPath, Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, 3, cfg.Logging.MaxFiles)
	// Unset values keep their defaults.
	require.Equal(t, 10, cfg.Logging.MaxSizeMB)
	require.Equal(t, ":9100", cfg.Weather.Listen)
}

func TestLoadPrecedenceEnvOverFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfigFile(t, `
[database]
path = "/tmp/from_file.db"
`)

	cfg, err := Load(LoadOptions{
		ConfigPath: cfgPath,
		Env: map[string]string{
			"AGENTDB_DATABASE_PATH": "/tmp/from_env.db",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "/tmp/from_env.db", cfg.Database.Path)
}

func TestLoadPrecedenceFlagOverEnv(t *testing.T) {
	t.Parallel()

	flagPath := "/tmp/from_flag.db"
	cfg, err := Load(LoadOptions{
		Env: map[string]string{
			"AGENTDB_DATABASE_PATH": "/tmp/from_env.db",
		},
		Flags: FlagOverrides{DatabasePath: &flagPath},
	})
	require.NoError(t, err)
	require.Equal(t, "/tmp/from_flag.db", cfg.Database.Path)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(LoadOptions{
		ConfigPath: filepath.Join(t.TempDir(), "absent.toml"),
		Env:        map[string]string{},
	})
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfigFile(t, `[database`)

	_, err := Load(LoadOptions{ConfigPath: cfgPath, Env: map[string]string{}})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{
		Env: map[string]string{"AGENTDB_LOG_LEVEL": "loud"},
	})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsEmptyDatabasePath(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfigFile(t, `
[database]
path = ""
`)

	_, err := Load(LoadOptions{ConfigPath: cfgPath, Env: map[string]string{}})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
