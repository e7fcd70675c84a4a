package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
title: Trend
width: 1024
type: scatter_plot
input: data.txt
formats: [svg, png]
source:
  driver: sqlite3
  dsn: file:points.db
  query: SELECT x, y FROM points
workers: 2
log_level: debug
`)

	cfg, err := NewYAMLConfigReader(zaptest.NewLogger(t)).ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Trend", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "scatter_plot", cfg.Type)
	assert.Equal(t, []string{"svg", "png"}, cfg.Formats)
	assert.Equal(t, "sqlite3", cfg.Source.Driver)
	assert.Equal(t, "SELECT x, y FROM points", cfg.Source.Query)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "template", cfg.SVGBackend)
	assert.Equal(t, 4, cfg.GetDecimals())
}

func TestReadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewYAMLConfigReader(zaptest.NewLogger(t)).ReadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "line_graph", cfg.Type)
	assert.Equal(t, []string{"svg"}, cfg.Formats)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 10, cfg.HistBins)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestReadConfigInvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "width: [oops\n")
	_, err := NewYAMLConfigReader(zaptest.NewLogger(t)).ReadConfig(path)
	assert.Error(t, err)
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	reader := NewYAMLConfigReader(zaptest.NewLogger(t))
	cfg, err := reader.ReadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	cfg.Title = "from file"

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("title", "", "")
	flags.String("type", "", "")
	flags.Int("width", 0, "")
	flags.StringSlice("format", nil, "")
	require.NoError(t, flags.Parse([]string{"--type", "bar", "--width", "320", "--format", "png,json"}))

	require.NoError(t, reader.ApplyFlags(cfg, flags))
	assert.Equal(t, "from file", cfg.Title)
	assert.Equal(t, "bar", cfg.Type)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, []string{"png", "json"}, cfg.Formats)
}

func TestReadConfigKeepsZeroDecimals(t *testing.T) {
	path := writeFile(t, "config.yaml", "decimals: 0\n")

	reader := NewYAMLConfigReader(zaptest.NewLogger(t))
	cfg, err := reader.ReadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Decimals)
	assert.Equal(t, 0, cfg.GetDecimals())
	assert.Equal(t, "3", DecimalFmt(cfg.GetDecimals())(3.2))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("decimals", 4, "")
	require.NoError(t, flags.Parse([]string{"--decimals", "2"}))
	require.NoError(t, reader.ApplyFlags(cfg, flags))
	assert.Equal(t, 2, cfg.GetDecimals())
}
