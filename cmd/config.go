package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "stride.yaml"

// Config holds the CLI settings read from stride.yaml. Flags given on the
// command line win over the file.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Bindings    string `yaml:"bindings"`
	HistoryFile string `yaml:"history_file"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Bindings: "text",
	}
}

// loadConfig reads path on top of the defaults. A missing file is only an
// error when the path was asked for explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return nil, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.Bindings {
	case "none", "text", "yaml":
		return nil
	default:
		return errors.Errorf("unknown bindings format: %s", c.Bindings)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Errorf("unknown log level: %s", level)
	}
}
