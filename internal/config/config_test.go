package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/salesflow/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultInputPath, cfg.Input.Path)
	assert.Equal(t, DefaultOutputPath, cfg.Output.Path)
	assert.Equal(t, DefaultTimeFormat, cfg.Output.TimeFormat)
	assert.Equal(t, "summary", cfg.Output.Format)
	assert.True(t, cfg.Output.Progress)
	assert.True(t, cfg.Charts.Enabled)
	assert.True(t, cfg.Charts.Terminal)
	assert.True(t, cfg.Charts.Workbook)
	assert.Equal(t, DefaultChartsDir, cfg.Charts.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salesflow.yaml")
	content := `input:
  path: data/in.csv
output:
  path: data/out.csv
  format: json
charts:
  enabled: false
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "data/in.csv", cfg.Input.Path)
	assert.Equal(t, "data/out.csv", cfg.Output.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Charts.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultTimeFormat, cfg.Output.TimeFormat)
}

func TestLoad_NilViper(t *testing.T) {
	_, err := Load(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		mutate        func(*Config)
		name          string
		errorContains string
		wantErr       bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:          "empty input path",
			mutate:        func(c *Config) { c.Input.Path = "  " },
			wantErr:       true,
			errorContains: "input.path is required",
		},
		{
			name:          "empty output path",
			mutate:        func(c *Config) { c.Output.Path = "" },
			wantErr:       true,
			errorContains: "output.path is required",
		},
		{
			name: "output overwrites input",
			mutate: func(c *Config) {
				c.Input.Path = "./data.csv"
				c.Output.Path = "data.csv"
			},
			wantErr:       true,
			errorContains: "must differ",
		},
		{
			name:          "unknown output format",
			mutate:        func(c *Config) { c.Output.Format = "xml" },
			wantErr:       true,
			errorContains: "invalid output format: xml",
		},
		{
			name:          "workbook charts without directory",
			mutate:        func(c *Config) { c.Charts.Dir = "" },
			wantErr:       true,
			errorContains: "charts.dir is required",
		},
		{
			name: "charts disabled without directory",
			mutate: func(c *Config) {
				c.Charts.Dir = ""
				c.Charts.Enabled = false
			},
		},
		{
			name:          "bad log level",
			mutate:        func(c *Config) { c.Logging.Level = "loud" },
			wantErr:       true,
			errorContains: "invalid log level",
		},
		{
			name:          "bad log format",
			mutate:        func(c *Config) { c.Logging.Format = "xml" },
			wantErr:       true,
			errorContains: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(viper.New())
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SALESFLOW_TEST_DIR", "/tmp/salesflow")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain relative", input: "sale_data.csv", expected: "sale_data.csv"},
		{name: "tilde only", input: "~", expected: home},
		{name: "tilde prefix", input: "~/data/sales.csv", expected: filepath.Join(home, "data/sales.csv")},
		{name: "env var", input: "$SALESFLOW_TEST_DIR/out.csv", expected: "/tmp/salesflow/out.csv"},
		{name: "tilde in middle untouched", input: "data/~/x.csv", expected: "data/~/x.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "out.csv")

	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureParentDir("plain.csv"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.csv")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o600))

	ok, err := FileExists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(filepath.Join(dir, "missing.csv"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = FileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}
