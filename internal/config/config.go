package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "autoshop.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTAccessTTL     = "24h"
	defaultShopTimezone     = "UTC"
	defaultListPageSize     = "12"
	defaultReminderSchedule = "@hourly"
	defaultRefundPendingSLA = "48h"
	defaultServiceName      = "autoshop-api"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	ServiceName string

	JWTSecret    string
	JWTAccessTTL time.Duration

	CORSAllowedOrigins []string

	// ShopLocation is used for calendar-day arithmetic on refund lead times.
	ShopLocation *time.Location
	ListPageSize int

	RefundReminderSchedule string
	RefundPendingSLA       time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.ServiceName = strings.TrimSpace(getEnv("SERVICE_NAME", defaultServiceName))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RefundReminderSchedule = strings.TrimSpace(getEnv("REFUND_REMINDER_SCHEDULE", defaultReminderSchedule))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.RefundPendingSLA, err = parseDurationEnv("REFUND_PENDING_SLA", defaultRefundPendingSLA)
	if err != nil {
		return nil, err
	}

	cfg.ListPageSize, err = parseIntEnv("LIST_PAGE_SIZE", defaultListPageSize)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("SHOP_TIMEZONE", defaultShopTimezone))
	cfg.ShopLocation, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE value %q: %w", tz, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the config was loaded for a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefundPendingSLA <= 0 {
		return fmt.Errorf("REFUND_PENDING_SLA must be > 0")
	}
	if cfg.ListPageSize <= 0 {
		return fmt.Errorf("LIST_PAGE_SIZE must be > 0")
	}
	if cfg.RefundReminderSchedule == "" {
		return fmt.Errorf("REFUND_REMINDER_SCHEDULE must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.DatabaseURL == defaultDatabaseURL {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
