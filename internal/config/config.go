package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
}

type ConvertConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Workers   int    `mapstructure:"workers"`
	// OptionSelect toggles matching/dropdown/multi-blank conversion.
	OptionSelect bool `mapstructure:"option_select"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"` // sqlite|postgres
	DSN     string `mapstructure:"dsn"`
}

// Load reads config.yaml from path (if present) with CANVAS2OLX_* env
// overrides; absent both, the defaults below apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CANVAS2OLX")
	v.AutomaticEnv()

	v.BindEnv("convert.output_dir", "CANVAS2OLX_OUTPUT_DIR")
	v.BindEnv("convert.workers", "CANVAS2OLX_WORKERS")
	v.BindEnv("convert.option_select", "CANVAS2OLX_OPTION_SELECT")

	v.BindEnv("log.level", "CANVAS2OLX_LOG_LEVEL")
	v.BindEnv("log.file", "CANVAS2OLX_LOG_FILE")

	v.BindEnv("history.enabled", "CANVAS2OLX_HISTORY_ENABLED")
	v.BindEnv("history.driver", "CANVAS2OLX_HISTORY_DRIVER")
	v.BindEnv("history.dsn", "CANVAS2OLX_HISTORY_DSN")

	v.SetDefault("convert.output_dir", "olx_output")
	v.SetDefault("convert.workers", 4)
	v.SetDefault("convert.option_select", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
