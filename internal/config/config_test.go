package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("CALENDAR_TIMEZONE", "Europe/Berlin")
	t.Setenv("RATE_LIMIT_WRITES", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, 10, cfg.RateLimitWrites)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("CALENDAR_TIMEZONE", "Mars/Olympus_Mons")
	t.Setenv("RATE_LIMIT_WRITES", "lots")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 60, cfg.RateLimitWrites)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}
