package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/salesflow/internal/common"
)

// Default values used when neither a config file nor flags provide one.
const (
	DefaultInputPath  = "sale_data.csv"
	DefaultOutputPath = "sale_analysis_result.csv"
	DefaultChartsDir  = "charts"
	DefaultTimeFormat = "2006-01-02 15:04:05"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultOutput     = "summary"
)

// Config holds everything a single analysis run needs.
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Charts  ChartsConfig  `mapstructure:"charts"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig locates the source table.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig controls the augmented table export and the console report.
type OutputConfig struct {
	Path       string `mapstructure:"path"`
	TimeFormat string `mapstructure:"time_format"`
	Format     string `mapstructure:"format"`
	Progress   bool   `mapstructure:"progress"`
}

// ChartsConfig controls chart production.
type ChartsConfig struct {
	Dir      string `mapstructure:"dir"`
	Enabled  bool   `mapstructure:"enabled"`
	Terminal bool   `mapstructure:"terminal"`
	Workbook bool   `mapstructure:"workbook"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.path", DefaultInputPath)
	v.SetDefault("output.path", DefaultOutputPath)
	v.SetDefault("output.time_format", DefaultTimeFormat)
	v.SetDefault("output.format", DefaultOutput)
	v.SetDefault("output.progress", true)
	v.SetDefault("charts.dir", DefaultChartsDir)
	v.SetDefault("charts.enabled", true)
	v.SetDefault("charts.terminal", true)
	v.SetDefault("charts.workbook", true)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load reads the configuration from v, applies defaults, and validates it.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: viper instance is nil", common.ErrMissingConfig)
	}
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	cfg.Input.Path = ExpandPath(cfg.Input.Path)
	cfg.Output.Path = ExpandPath(cfg.Output.Path)
	cfg.Charts.Dir = ExpandPath(cfg.Charts.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", common.ErrMissingConfig)
	}
	if strings.TrimSpace(c.Input.Path) == "" {
		return fmt.Errorf("%w: input.path is required", common.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("%w: output.path is required", common.ErrInvalidConfig)
	}
	if filepath.Clean(c.Input.Path) == filepath.Clean(c.Output.Path) {
		return fmt.Errorf("%w: output.path must differ from input.path", common.ErrInvalidConfig)
	}
	if c.Output.TimeFormat == "" {
		return fmt.Errorf("%w: output.time_format is required", common.ErrInvalidConfig)
	}
	switch c.Output.Format {
	case "summary", "json":
	default:
		return fmt.Errorf("%w: invalid output format: %s (valid options: summary, json)", common.ErrInvalidConfig, c.Output.Format)
	}
	if c.Charts.Enabled && c.Charts.Workbook && strings.TrimSpace(c.Charts.Dir) == "" {
		return fmt.Errorf("%w: charts.dir is required when workbook charts are enabled", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
