package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Platform gates privileged endpoints. Anything that is not explicitly
// "dev" is treated as prod, the safest default.
type Platform string

const (
	// PlatformDev enables destructive development endpoints
	PlatformDev Platform = "dev"
	// PlatformProd is the default
	PlatformProd Platform = "prod"
)

// Config holds the server configuration, populated from environment
// variables. The JWT secret and the webhook API key are process-wide
// secrets: loaded once at startup and never mutated.
type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"chirpy.db"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	PolkaKey       string        `env:"POLKA_KEY,required,notEmpty"`
	Platform       Platform      `env:"PLATFORM" envDefault:"prod"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Platform != PlatformDev {
		cfg.Platform = PlatformProd
	}

	return cfg, nil
}
