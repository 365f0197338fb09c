package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Log    LogConfig
	Engine EngineConfig
	Export ExportConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// EngineConfig holds the default view settings of the analytics engine
type EngineConfig struct {
	DefaultPageSize     int
	MaxPageSize         int
	DefaultSortKey      string
	DefaultSortDir      string
	ExcludeUnknownFacet bool
}

// ExportConfig holds CSV export settings
type ExportConfig struct {
	Directory string
	// FilePrefix is prepended to generated export file names
	FilePrefix string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ANALYTICS_ prefix (e.g., ANALYTICS_LOG_LEVEL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ANALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Engine: EngineConfig{
			DefaultPageSize:     v.GetInt("engine.default_page_size"),
			MaxPageSize:         v.GetInt("engine.max_page_size"),
			DefaultSortKey:      v.GetString("engine.default_sort_key"),
			DefaultSortDir:      v.GetString("engine.default_sort_dir"),
			ExcludeUnknownFacet: v.GetBool("engine.exclude_unknown_facet"),
		},
		Export: ExportConfig{
			Directory:  v.GetString("export.directory"),
			FilePrefix: v.GetString("export.file_prefix"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sales-analytics"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Engine.DefaultPageSize == 0 {
		cfg.Engine.DefaultPageSize = 10
	}
	if cfg.Engine.MaxPageSize == 0 {
		cfg.Engine.MaxPageSize = 500
	}
	if cfg.Engine.DefaultSortKey == "" {
		cfg.Engine.DefaultSortKey = "date"
	}
	if cfg.Engine.DefaultSortDir == "" {
		cfg.Engine.DefaultSortDir = "desc"
	}
	if cfg.Export.Directory == "" {
		cfg.Export.Directory = "."
	}
	if cfg.Export.FilePrefix == "" {
		cfg.Export.FilePrefix = "sales-report"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Engine.DefaultPageSize <= 0 {
		return fmt.Errorf("engine.default_page_size must be positive")
	}
	if c.Engine.MaxPageSize < c.Engine.DefaultPageSize {
		return fmt.Errorf("engine.max_page_size (%d) cannot be below engine.default_page_size (%d)",
			c.Engine.MaxPageSize, c.Engine.DefaultPageSize)
	}
	switch c.Engine.DefaultSortDir {
	case "asc", "desc":
	default:
		return fmt.Errorf("engine.default_sort_dir must be 'asc' or 'desc', got %q", c.Engine.DefaultSortDir)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}
	return nil
}
