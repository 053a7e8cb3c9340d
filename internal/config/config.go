package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound request to the geocoding and
	// forecast endpoints.
	HTTPTimeout time.Duration

	// Upstream endpoint overrides, mainly for tests.
	GeocodeURL  string
	ForecastURL string

	// Cache TTLs: geocode results per input name, forecasts per coordinate pair.
	GeocodeCacheTTL  time.Duration
	ForecastCacheTTL time.Duration

	// CacheSweepInterval controls how often the janitor purges expired entries.
	CacheSweepInterval time.Duration

	// DefaultCity prefills the form input.
	DefaultCity string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:        getenvDefault("PORT", "8080"),
		GeocodeURL:  os.Getenv("GEOCODE_URL"),
		ForecastURL: os.Getenv("FORECAST_URL"),
		DefaultCity: getenvDefault("DEFAULT_CITY", "Sydney"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheTTL, err = getenvDuration("GEOCODE_CACHE_TTL", "600s"); err != nil {
		return nil, err
	}
	if cfg.ForecastCacheTTL, err = getenvDuration("FORECAST_CACHE_TTL", "300s"); err != nil {
		return nil, err
	}
	if cfg.CacheSweepInterval, err = getenvDuration("CACHE_SWEEP_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
