package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const minProductionSecretLength = 32

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// HTTP
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security (tokens are issued elsewhere; this service only verifies them)
	JWTSecret string

	// Calendar: the timezone in which "today" and timestamps are turned into days
	CalendarTimezone string
	Location         *time.Location

	// Rate limiting for write endpoints, per user
	RateLimitWrites int
	RateLimitWindow time.Duration

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "Study Buddy"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		ReadTimeout:  envDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: envDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/studybuddy.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		JWTSecret: envRequired("JWT_SECRET"),

		CalendarTimezone: envString("CALENDAR_TIMEZONE", "UTC"),

		RateLimitWrites: envInt("RATE_LIMIT_WRITES", 60),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	cfg.Location = envLocation(cfg.CalendarTimezone)

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures production deployments are not running with toy secrets.
func validateProduction(cfg *Config) {
	if len(cfg.JWTSecret) < minProductionSecretLength {
		slog.Error("production deployment requires a JWT_SECRET of at least 32 characters",
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "key", "CALENDAR_TIMEZONE", "value", name)
		return time.UTC
	}
	return loc
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
