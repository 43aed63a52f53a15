package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Extraction ExtractionConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds persistence configuration
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// ExtractionConfig holds the tunable bands and thresholds for the
// extraction engine
type ExtractionConfig struct {
	PriceMin           float64 `mapstructure:"price_min"`
	PriceMax           float64 `mapstructure:"price_max"`
	ListingPriceMin    float64 `mapstructure:"listing_price_min"`
	ListingPriceMax    float64 `mapstructure:"listing_price_max"`
	QuantityMin        int     `mapstructure:"quantity_min"`
	QuantityMax        int     `mapstructure:"quantity_max"`
	ListingQuantityMin int     `mapstructure:"listing_quantity_min"`
	ListingQuantityMax int     `mapstructure:"listing_quantity_max"`
	MinDealConfidence  float64 `mapstructure:"min_deal_confidence"`
	MinDiscountPercent float64 `mapstructure:"min_discount_percent"`
	DebugLogging       bool    `mapstructure:"debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ammotrack/")

	// Environment variable settings: AMMOTRACK_DATABASE_DSN overrides
	// database.dsn and so on
	v.SetEnvPrefix("AMMOTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Extraction defaults: the domain-valid price band, the tighter
	// listing-page band, and the quantity sanity range
	v.SetDefault("extraction.price_min", 0.10)
	v.SetDefault("extraction.price_max", 10000.00)
	v.SetDefault("extraction.listing_price_min", 15.00)
	v.SetDefault("extraction.listing_price_max", 3000.00)
	v.SetDefault("extraction.quantity_min", 1)
	v.SetDefault("extraction.quantity_max", 10000)
	v.SetDefault("extraction.listing_quantity_min", 10)
	v.SetDefault("extraction.listing_quantity_max", 5000)
	v.SetDefault("extraction.min_deal_confidence", 0.5)
	v.SetDefault("extraction.min_discount_percent", 10)
	v.SetDefault("extraction.debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required (set AMMOTRACK_DATABASE_DSN)")
	}

	if config.Extraction.PriceMin <= 0 || config.Extraction.PriceMax <= config.Extraction.PriceMin {
		return fmt.Errorf("extraction price band is invalid: min=%.2f max=%.2f",
			config.Extraction.PriceMin, config.Extraction.PriceMax)
	}

	if config.Extraction.QuantityMin < 1 || config.Extraction.QuantityMax <= config.Extraction.QuantityMin {
		return fmt.Errorf("extraction quantity band is invalid: min=%d max=%d",
			config.Extraction.QuantityMin, config.Extraction.QuantityMax)
	}

	if config.Extraction.MinDealConfidence <= 0 || config.Extraction.MinDealConfidence > 1 {
		return fmt.Errorf("min deal confidence must be in (0,1], got: %.2f",
			config.Extraction.MinDealConfidence)
	}

	return nil
}
