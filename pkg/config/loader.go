package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    Port      int   `env:"HTTP_PORT" envDefault:"8080"`
//	    Threshold int64 `env:"FREE_SHIPPING_THRESHOLD_CENTS" envDefault:"6000"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
