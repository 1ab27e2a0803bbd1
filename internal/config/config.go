// Package config loads client configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes client settings. The API origin is fixed per deployment;
// everything speaks to a single remote backend.
type Config struct {
	APIBaseURL  string        `env:"DOCCHAT_API_URL" envDefault:"https://doctchat-backend.onrender.com"`
	HTTPTimeout time.Duration `env:"DOCCHAT_HTTP_TIMEOUT" envDefault:"60s"`
	StateDir    string        `env:"DOCCHAT_STATE_DIR"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
