package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string        // API bind address, e.g., ":8080"
	LogDir        string        // logs directory
	DatabaseURL   string        // postgres DSN; empty means in-memory stores
	RedisURL      string        // redis URL for the check lease; empty means in-process lease
	TickInterval  time.Duration // scheduler batch cadence
	WarmUpDelay   time.Duration // delay before the initial sweep
	Concurrency   int           // max concurrent monitor checks per batch
	AdminAPIKeys  []string      // keys allowed on trigger/mutation routes
	PublicAPIKeys []string      // keys allowed on read routes
}

// FromEnv loads configuration from the environment, reading a .env file
// first when one is present.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("API_ADDR", ":8080"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		TickInterval:  getEnvDuration("TICK_INTERVAL", 30*time.Second),
		WarmUpDelay:   getEnvDuration("WARMUP_DELAY", 5*time.Second),
		Concurrency:   getEnvInt("CHECK_CONCURRENCY", 8),
		AdminAPIKeys:  splitList(os.Getenv("ADMIN_API_KEYS")),
		PublicAPIKeys: splitList(os.Getenv("PUBLIC_API_KEYS")),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
