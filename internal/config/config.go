package config

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultDatabasePath  = "agent_database.db"
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxFiles   = 5
	defaultWeatherListen = ":8000"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Weather  WeatherConfig  `toml:"weather"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

type WeatherConfig struct {
	Listen string `toml:"listen"`
}

type LoadOptions struct {
	ConfigPath string
	Env        map[string]string
	Flags      FlagOverrides
}

type FlagOverrides struct {
	DatabasePath  *string
	LogLevel      *string
	WeatherListen *string
}

func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Path: defaultDatabasePath,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			File:      "",
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
		Weather: WeatherConfig{
			Listen: defaultWeatherListen,
		},
	}
}

// Load builds the effective configuration: defaults, then the TOML file if
// one exists, then environment overrides, then flag overrides.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if err := loadAndApplyFile(opts.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg, opts)
	applyFlagOverrides(&cfg, opts.Flags)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type rawConfig struct {
	Database *rawDatabase `toml:"database"`
	Logging  *rawLogging  `toml:"logging"`
	Weather  *rawWeather  `toml:"weather"`
}

type rawDatabase struct {
	Path *string `toml:"path"`
}

type rawLogging struct {
	Level     *string `toml:"level"`
	File      *string `toml:"file"`
	MaxSizeMB *int    `toml:"max_size_mb"`
	MaxFiles  *int    `toml:"max_files"`
}

type rawWeather struct {
	Listen *string `toml:"listen"`
}

func loadAndApplyFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}

	if raw.Database != nil {
		setString(raw.Database.Path, &cfg.Database.Path)
	}
	if raw.Logging != nil {
		setString(raw.Logging.Level, &cfg.Logging.Level)
		setString(raw.Logging.File, &cfg.Logging.File)
		setInt(raw.Logging.MaxSizeMB, &cfg.Logging.MaxSizeMB)
		setInt(raw.Logging.MaxFiles, &cfg.Logging.MaxFiles)
	}
	if raw.Weather != nil {
		setString(raw.Weather.Listen, &cfg.Weather.Listen)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, opts LoadOptions) {
	if value, ok := lookupEnv(opts, "AGENTDB_DATABASE_PATH"); ok {
		cfg.Database.Path = value
	}
	if value, ok := lookupEnv(opts, "AGENTDB_LOG_LEVEL"); ok {
		cfg.Logging.Level = value
	}
	if value, ok := lookupEnv(opts, "AGENTDB_LOG_FILE"); ok {
		cfg.Logging.File = value
	}
	if value, ok := lookupEnv(opts, "AGENTDB_WEATHER_LISTEN"); ok {
		cfg.Weather.Listen = value
	}
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	if flags.DatabasePath != nil && *flags.DatabasePath != "" {
		cfg.Database.Path = *flags.DatabasePath
	}
	if flags.LogLevel != nil && *flags.LogLevel != "" {
		cfg.Logging.Level = *flags.LogLevel
	}
	if flags.WeatherListen != nil && *flags.WeatherListen != "" {
		cfg.Weather.Listen = *flags.WeatherListen
	}
}

func validate(cfg Config) error {
	if cfg.Database.Path == "" {
		return fmt.Errorf("%w: database.path must not be empty", ErrInvalidConfig)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be one of debug, info, warn, error", ErrInvalidConfig)
	}
	if cfg.Logging.MaxSizeMB < 0 {
		return fmt.Errorf("%w: logging.max_size_mb must not be negative", ErrInvalidConfig)
	}
	if cfg.Logging.MaxFiles < 0 {
		return fmt.Errorf("%w: logging.max_files must not be negative", ErrInvalidConfig)
	}
	if cfg.Weather.Listen == "" {
		return fmt.Errorf("%w: weather.listen must not be empty", ErrInvalidConfig)
	}
	return nil
}

func lookupEnv(opts LoadOptions, key string) (string, bool) {
	if opts.Env != nil {
		value, ok := opts.Env[key]
		return value, ok
	}
	return os.LookupEnv(key)
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}
