package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	MaxWebSocketClients int `env:"MAX_WEBSOCKET_CLIENTS" default:"10000"`

	SubmitRatePerSecond float64       `env:"SUBMIT_RATE_PER_SECOND" default:"20"`
	SubmitBurst         int           `env:"SUBMIT_BURST" default:"40"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MaxWebSocketClients <= 0 {
		return fmt.Errorf("MAX_WEBSOCKET_CLIENTS must be positive, got %d", cfg.MaxWebSocketClients)
	}
	if cfg.SubmitRatePerSecond <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_SECOND must be positive, got %f", cfg.SubmitRatePerSecond)
	}
	if cfg.SubmitBurst <= 0 {
		return fmt.Errorf("SUBMIT_BURST must be positive, got %d", cfg.SubmitBurst)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	// Production must not fall back to the in-memory store
	if cfg.AppEnv == "production" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}

	return nil
}
