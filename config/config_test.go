package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("AMMOTRACK_SERVER_PORT")
		os.Unsetenv("AMMOTRACK_SERVER_ENVIRONMENT")
		os.Unsetenv("AMMOTRACK_DATABASE_DSN")
		os.Unsetenv("AMMOTRACK_EXTRACTION_PRICE_MIN")
		os.Unsetenv("AMMOTRACK_EXTRACTION_PRICE_MAX")
		os.Unsetenv("AMMOTRACK_EXTRACTION_MIN_DEAL_CONFIDENCE")
		os.Unsetenv("AMMOTRACK_EXTRACTION_DEBUG_LOGGING")
		os.Unsetenv("AMMOTRACK_RATELIMIT_PER_IP")
	}

	t.Run("loads with defaults when only DSN is set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("AMMOTRACK_DATABASE_DSN", "user:pass@tcp(localhost:3306)/ammotrack")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Extraction.PriceMin != 0.10 || cfg.Extraction.PriceMax != 10000.00 {
			t.Errorf("price band = %.2f-%.2f, want 0.10-10000.00",
				cfg.Extraction.PriceMin, cfg.Extraction.PriceMax)
		}
		if cfg.Extraction.ListingPriceMin != 15.00 || cfg.Extraction.ListingPriceMax != 3000.00 {
			t.Errorf("listing price band = %.2f-%.2f, want 15.00-3000.00",
				cfg.Extraction.ListingPriceMin, cfg.Extraction.ListingPriceMax)
		}
		if cfg.Extraction.QuantityMin != 1 || cfg.Extraction.QuantityMax != 10000 {
			t.Errorf("quantity band = %d-%d, want 1-10000",
				cfg.Extraction.QuantityMin, cfg.Extraction.QuantityMax)
		}
		if cfg.Extraction.ListingQuantityMin != 10 || cfg.Extraction.ListingQuantityMax != 5000 {
			t.Errorf("listing quantity band = %d-%d, want 10-5000",
				cfg.Extraction.ListingQuantityMin, cfg.Extraction.ListingQuantityMax)
		}
		if cfg.Extraction.MinDealConfidence != 0.5 {
			t.Errorf("MinDealConfidence = %v, want 0.5", cfg.Extraction.MinDealConfidence)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("AMMOTRACK_DATABASE_DSN", "user:pass@tcp(db:3306)/ammotrack")
		os.Setenv("AMMOTRACK_SERVER_PORT", "9090")
		os.Setenv("AMMOTRACK_SERVER_ENVIRONMENT", "production")
		os.Setenv("AMMOTRACK_EXTRACTION_MIN_DEAL_CONFIDENCE", "0.7")
		os.Setenv("AMMOTRACK_EXTRACTION_DEBUG_LOGGING", "true")
		os.Setenv("AMMOTRACK_RATELIMIT_PER_IP", "200")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Extraction.MinDealConfidence != 0.7 {
			t.Errorf("MinDealConfidence = %v, want 0.7", cfg.Extraction.MinDealConfidence)
		}
		if !cfg.Extraction.DebugLogging {
			t.Error("DebugLogging = false, want true")
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
	})

	t.Run("fails validation when DSN is missing", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing DSN")
		}
	})

	t.Run("fails validation for inverted price band", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("AMMOTRACK_DATABASE_DSN", "user:pass@tcp(localhost:3306)/ammotrack")
		os.Setenv("AMMOTRACK_EXTRACTION_PRICE_MIN", "100")
		os.Setenv("AMMOTRACK_EXTRACTION_PRICE_MAX", "10")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for inverted price band")
		}
	})

	t.Run("fails validation for out-of-range confidence", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("AMMOTRACK_DATABASE_DSN", "user:pass@tcp(localhost:3306)/ammotrack")
		os.Setenv("AMMOTRACK_EXTRACTION_MIN_DEAL_CONFIDENCE", "1.5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for confidence > 1")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{DSN: "user:pass@tcp(localhost:3306)/ammotrack"},
			Extraction: ExtractionConfig{
				PriceMin:          0.10,
				PriceMax:          10000,
				QuantityMin:       1,
				QuantityMax:       10000,
				MinDealConfidence: 0.5,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when DSN is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Database.DSN = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty DSN")
		}
	})

	t.Run("fails for non-positive price minimum", func(t *testing.T) {
		cfg := valid()
		cfg.Extraction.PriceMin = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero price minimum")
		}
	})

	t.Run("fails for quantity band below one", func(t *testing.T) {
		cfg := valid()
		cfg.Extraction.QuantityMin = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero quantity minimum")
		}
	})

	t.Run("fails for confidence above one", func(t *testing.T) {
		cfg := valid()
		cfg.Extraction.MinDealConfidence = 1.1
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for confidence above 1")
		}
	})
}
