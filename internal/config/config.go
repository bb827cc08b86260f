// README: Config loader with env defaults for HTTP, rate storage, cache, lookups, and maps settings.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type PricingConfig struct {
	LookupWorkers int
	CacheTTL      time.Duration
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	Rates struct {
		Driver string
		DSN    string
	}
	Redis struct {
		Addr string
	}
	Pricing  PricingConfig
	Vehicles struct {
		File string
	}
	Maps struct {
		APIKey string
	}
}

var (
	ErrUnknownDriver = errors.New("unsupported rates driver")
	ErrBadWorkers    = errors.New("lookup workers must be positive")
)

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FARELY_HTTP_ADDR", ":3000")
	cfg.HTTP.CORSOrigins = envOrDefaultList("FARELY_CORS_ORIGINS", []string{"*"})
	cfg.Rates.Driver = strings.ToLower(envOrDefault("FARELY_RATES_DRIVER", "sqlite"))
	cfg.Rates.DSN = envOrDefault("FARELY_RATES_DSN", "data/toll_rates.db")
	cfg.Redis.Addr = envOrDefault("FARELY_REDIS_ADDR", "")
	cfg.Pricing.LookupWorkers = envOrDefaultInt("FARELY_LOOKUP_WORKERS", 4)
	cfg.Pricing.CacheTTL = time.Duration(envOrDefaultInt("FARELY_RATE_CACHE_TTL_SEC", 300)) * time.Second
	cfg.Vehicles.File = envOrDefault("FARELY_VEHICLE_CLASSES_FILE", "")
	cfg.Maps.APIKey = envOrDefault("FARELY_MAPS_API_KEY", "")

	switch cfg.Rates.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return Config{}, ErrUnknownDriver
	}
	if cfg.Pricing.LookupWorkers <= 0 {
		return Config{}, ErrBadWorkers
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
