package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 40, cfg.Projection.HorizonYears)
	assert.Equal(t, "0.02", cfg.GetValueGrowthRate().String())
	assert.Equal(t, "0.015", cfg.GetRentGrowthRate().String())
	assert.Equal(t, "4.5", cfg.GetFallbackInterestRate().String())
	assert.Equal(t, "9", cfg.GetChurchTaxPercent().String())
	assert.Equal(t, time.Hour, cfg.GetCacheTTL())
	assert.Equal(t, time.Minute, cfg.GetRateLimitWindow())
	assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.Cron)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROJECTION_HORIZON_YEARS", "25")
	t.Setenv("PROJECTION_VALUE_GROWTH", "0.01")
	t.Setenv("PROJECTION_CACHE_TTL", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Projection.HorizonYears)
	assert.Equal(t, "0.01", cfg.GetValueGrowthRate().String())
	assert.Equal(t, 10*time.Minute, cfg.GetCacheTTL())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative horizon", key: "PROJECTION_HORIZON_YEARS", value: "-1"},
		{name: "growth not a decimal", key: "PROJECTION_RENT_GROWTH", value: "fast"},
		{name: "ttl not a duration", key: "PROJECTION_CACHE_TTL", value: "soon"},
		{name: "no rate limit", key: "RATE_LIMIT_REQUESTS", value: "0"},
		{name: "unknown timezone", key: "SCHEDULER_TIMEZONE", value: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Helpers(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: "8080", Env: "prod"},
		Redis:  RedisConfig{Host: "cache", Port: "6379"},
	}

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Error(t, cfg.ValidateDatabase())
	assert.Equal(t, "UTC", cfg.GetSchedulerLocation().String())
}
