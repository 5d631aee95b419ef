package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DukeRupert/pager/internal/pagination"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	Env             string
	Port            int
	LogLevel        string
	ShutdownTimeout time.Duration

	// Pager defaults, overridable per request where the handler allows it
	PagerDelta         int
	PagerEllipsisText  string
	PagerLocale        language.Tag
	PagerMaxTotalPages int // Upper bound on ?total= to keep requests cheap
	PagerClasses       pagination.Classes

	// Rate limiting for pager endpoints
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// TrustProxy reads client IPs from X-Forwarded-For / X-Real-IP.
	// Only enable behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnvInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "debug"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		PagerDelta:         getEnvInt("PAGER_DELTA", pagination.DefaultPagerDelta),
		PagerEllipsisText:  getEnv("PAGER_ELLIPSIS_TEXT", pagination.DefaultEllipsisText),
		PagerMaxTotalPages: getEnvInt("PAGER_MAX_TOTAL_PAGES", 10000),
		PagerClasses: pagination.Classes{
			Ellipsis:     getEnv("PAGER_CLASS_ELLIPSIS", pagination.DefaultEllipsis),
			Active:       getEnv("PAGER_CLASS_ACTIVE", pagination.DefaultActive),
			ListItem:     getEnv("PAGER_CLASS_ITEM", ""),
			ListItemLink: getEnv("PAGER_CLASS_LINK", ""),
			Disabled:     getEnv("PAGER_CLASS_DISABLED", ""),
		},

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		TrustProxy:        getEnvBool("TRUST_PROXY", false),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	locale, err := language.Parse(getEnv("PAGER_LOCALE", "en"))
	if err != nil {
		return nil, fmt.Errorf("PAGER_LOCALE is not a valid language tag: %w", err)
	}
	cfg.PagerLocale = locale

	if cfg.PagerDelta < 0 {
		return nil, fmt.Errorf("PAGER_DELTA must not be negative, got: %d", cfg.PagerDelta)
	}
	if cfg.PagerMaxTotalPages < 1 {
		return nil, fmt.Errorf("PAGER_MAX_TOTAL_PAGES must be at least 1, got: %d", cfg.PagerMaxTotalPages)
	}
	if cfg.RateLimitRequests < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got: %s", cfg.RateLimitWindow)
	}

	return cfg, nil
}

// PagerOptions returns the configured compression options.
func (c *Config) PagerOptions() pagination.Options {
	return pagination.Options{
		PagerDelta:   c.PagerDelta,
		Classes:      c.PagerClasses,
		EllipsisText: c.PagerEllipsisText,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
