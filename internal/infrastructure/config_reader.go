package infrastructure

import (
	"data-visualizer/internal/domain"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type YAMLConfigReader struct {
	logger *zap.Logger
}

func NewYAMLConfigReader(logger *zap.Logger) *YAMLConfigReader {
	return &YAMLConfigReader{logger: logger}
}

// ReadConfig reads path and fills in defaults. A missing file yields the defaults.
func (r *YAMLConfigReader) ReadConfig(path string) (*domain.Config, error) {
	var config domain.Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		r.logger.Info("Config file not found, using defaults", zap.String("path", path))
	case err != nil:
		return nil, errors.Wrapf(err, "read config %s", path)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	r.SetDefaults(&config)

	return &config, nil
}

// ApplyFlags overrides config fields with the flags the user explicitly set.
func (r *YAMLConfigReader) ApplyFlags(config *domain.Config, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "type":
			config.Type, err = flags.GetString(f.Name)
		case "title":
			config.Title, err = flags.GetString(f.Name)
		case "width":
			config.Width, err = flags.GetInt(f.Name)
		case "height":
			config.Height, err = flags.GetInt(f.Name)
		case "input":
			config.Input, err = flags.GetString(f.Name)
		case "output-dir":
			config.OutputDir, err = flags.GetString(f.Name)
		case "format":
			config.Formats, err = flags.GetStringSlice(f.Name)
		case "workers":
			config.Workers, err = flags.GetInt(f.Name)
		case "log-level":
			config.LogLevel, err = flags.GetString(f.Name)
		case "svg-backend":
			config.SVGBackend, err = flags.GetString(f.Name)
		case "hist-bins":
			config.HistBins, err = flags.GetInt(f.Name)
		case "decimals":
			var decimals int
			if decimals, err = flags.GetInt(f.Name); err == nil {
				config.Decimals = &decimals
			}
		}
		if err == nil {
			r.logger.Debug("Config overridden by flag", zap.String("flag", f.Name), zap.String("value", f.Value.String()))
		}
	})
	if err != nil {
		return errors.Wrap(err, "apply flags")
	}
	return nil
}

func (r *YAMLConfigReader) SetDefaults(config *domain.Config) {
	if config.Width == 0 {
		config.Width = 800
	}
	if config.Height == 0 {
		config.Height = 600
	}
	if config.Type == "" {
		config.Type = domain.LineGraph.String()
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if len(config.Formats) == 0 {
		config.Formats = []string{"svg"}
	}
	if config.SVGBackend == "" {
		config.SVGBackend = "template"
	}
	if config.YAxisMode == "" {
		config.YAxisMode = "auto"
	}
	if config.Decimals == nil {
		decimals := 4
		config.Decimals = &decimals
	}
	if config.HistBins == 0 {
		config.HistBins = 10
	}
	if config.Workers == 0 {
		config.Workers = max(1, runtime.NumCPU()-1)
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
