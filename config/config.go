// Package config loads the application settings from defaults, an optional
// YAML file and DTB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/magpierre/dtb/internal/source"
)

// EnvPrefix is prepended to every environment override, e.g. DTB_SOURCE_URL.
const EnvPrefix = "DTB"

// Config holds every setting the application reads.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Table  TableConfig  `mapstructure:"table"`
	Window WindowConfig `mapstructure:"window"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig describes the JSON endpoint.
type SourceConfig struct {
	URL             string        `mapstructure:"url"`
	Field           string        `mapstructure:"field"`
	ListField       string        `mapstructure:"list_field"`
	Timeout         time.Duration `mapstructure:"timeout"`
	TransformScript string        `mapstructure:"transform_script"`
}

// TableConfig holds the initial view settings.
type TableConfig struct {
	PageSize     int    `mapstructure:"page_size"`
	FilterColumn string `mapstructure:"filter_column"`
	ColumnWidth  int    `mapstructure:"column_width"`
}

// WindowConfig sizes the main window.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.url", "https://jsonplaceholder.typicode.com/photos")
	v.SetDefault("source.field", "posts")
	v.SetDefault("source.list_field", "tags")
	v.SetDefault("source.timeout", "60s")
	v.SetDefault("source.transform_script", "")

	v.SetDefault("table.page_size", 10)
	v.SetDefault("table.filter_column", "title")
	v.SetDefault("table.column_width", 160)

	v.SetDefault("window.title", "Mini Project - DataTables")
	v.SetDefault("window.width", 1000)
	v.SetDefault("window.height", 700)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return New(v)
}

// New decodes and validates the settings held by v. Keys without a value
// take their defaults.
func New(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.URL == "" {
		errs = append(errs, errors.New("source.url is required"))
	}
	if c.Table.PageSize < 1 {
		errs = append(errs, fmt.Errorf("table.page_size must be positive, got %d", c.Table.PageSize))
	}
	if c.Table.FilterColumn == "" {
		errs = append(errs, errors.New("table.filter_column is required"))
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// FetcherConfig converts the source settings for the fetcher.
func (c *Config) FetcherConfig() source.Config {
	return source.Config{
		URL:             c.Source.URL,
		Field:           c.Source.Field,
		ListField:       c.Source.ListField,
		TransformScript: c.Source.TransformScript,
	}
}

// Build creates the zap logger described by l.
func (l LogConfig) Build() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}
