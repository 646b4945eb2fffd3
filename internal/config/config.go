// Package config loads the service settings from the environment and,
// optionally, from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every setting of the service.
type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" env-default:"sqlite:///users.db"`
	HTTPServer  `yaml:"http_server"`
	RateLimit   `yaml:"rate_limit"`
}

// HTTPServer holds the listener settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RateLimit configures the global request limiter. RPS 0 disables it.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"0"`
}

// Load reads .env (if present), then CONFIG_PATH (if set), then the
// environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file: %s - does not exist", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
