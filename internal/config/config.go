package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DataDir   string `env:"DATA_DIR" envDefault:"data"`
	TaskName  string `env:"TASK_NAME" envDefault:"MFTC"`
	PatternID int    `env:"PATTERN_ID" envDefault:"0"`
	MaskToken string `env:"MASK_TOKEN" envDefault:"[MASK]"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the config from the environment. If envFile is empty a .env
// file in the working directory is used when present.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file '%s': %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, continuing with environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
