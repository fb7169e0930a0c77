package config

import (
	"fmt"
	"time"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	pkgconfig "github.com/SVO0808/SVO-STUDIO/pkg/config"
)

// Config holds all configuration for the storefront engine.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis. An empty address switches cart storage to the in-memory
	// repository, which is what local development and tests use.
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka. Empty means events are dropped.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Upstream product catalog
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com"`

	// Pricing. Amounts are integer cents, the discount rate is in basis
	// points (1000 = 10%).
	FreeShippingThresholdCents int64 `env:"FREE_SHIPPING_THRESHOLD_CENTS" envDefault:"6000"`
	FlatShippingCostCents      int64 `env:"FLAT_SHIPPING_COST_CENTS" envDefault:"499"`
	DiscountRateBasisPoints    int64 `env:"DISCOUNT_RATE_BASIS_POINTS" envDefault:"1000"`

	// Coupon codes honored by the storefront, comma separated.
	CouponCodes []string `env:"COUPON_CODES" envDefault:"WELCOME10" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("invalid cart TTL: %d hours", c.CartTTLHours)
	}
	if c.FreeShippingThresholdCents < 0 || c.FlatShippingCostCents < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if c.DiscountRateBasisPoints < 0 || c.DiscountRateBasisPoints > 10000 {
		return fmt.Errorf("discount rate out of range: %d basis points", c.DiscountRateBasisPoints)
	}
	return nil
}

// CartTTL returns the cart TTL as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// Pricing returns the pricing configuration derived from environment values.
func (c *Config) Pricing() domain.PricingConfig {
	return domain.PricingConfig{
		FreeShippingThreshold: c.FreeShippingThresholdCents,
		FlatShippingCost:      c.FlatShippingCostCents,
		DiscountRate:          c.DiscountRateBasisPoints,
	}
}

// Coupons returns the coupon rule set derived from configured codes.
func (c *Config) Coupons() *domain.CouponRules {
	return domain.NewCouponRules(c.CouponCodes...)
}
