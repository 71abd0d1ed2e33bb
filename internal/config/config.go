package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server     ServerConfig     `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:",squash"`
	Redis      RedisConfig      `mapstructure:",squash"`
	Scheduler  SchedulerConfig  `mapstructure:",squash"`
	Logging    LoggingConfig    `mapstructure:",squash"`
	Projection ProjectionConfig `mapstructure:",squash"`
	Investment InvestmentConfig `mapstructure:",squash"`
	RateLimit  RateLimitConfig  `mapstructure:",squash"`
	Health     HealthConfig     `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Cron     string `mapstructure:"SCHEDULER_CRON"`
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// ProjectionConfig holds the caller-side defaults of the projection engine.
type ProjectionConfig struct {
	HorizonYears    int    `mapstructure:"PROJECTION_HORIZON_YEARS"`
	ValueGrowthRate string `mapstructure:"PROJECTION_VALUE_GROWTH"`
	RentGrowthRate  string `mapstructure:"PROJECTION_RENT_GROWTH"`
	MarginalTaxRate string `mapstructure:"PROJECTION_MARGINAL_TAX_RATE"`
	CacheTTL        string `mapstructure:"PROJECTION_CACHE_TTL"`
}

type InvestmentConfig struct {
	FallbackRate     string `mapstructure:"INVESTMENT_FALLBACK_RATE"`
	ChurchTaxPercent string `mapstructure:"INVESTMENT_CHURCH_TAX_RATE"`
}

type RateLimitConfig struct {
	Requests int    `mapstructure:"RATE_LIMIT_REQUESTS"`
	Window   string `mapstructure:"RATE_LIMIT_WINDOW"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// .env values become real environment variables, existing ones win
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SCHEDULER_CRON", "0 0 3 * * *")
	v.SetDefault("SCHEDULER_TIMEZONE", "Europe/Berlin")
	v.SetDefault("PROJECTION_HORIZON_YEARS", 40)
	v.SetDefault("PROJECTION_VALUE_GROWTH", "0.02")
	v.SetDefault("PROJECTION_RENT_GROWTH", "0.015")
	v.SetDefault("PROJECTION_MARGINAL_TAX_RATE", "0.42")
	v.SetDefault("PROJECTION_CACHE_TTL", "1h")
	v.SetDefault("INVESTMENT_FALLBACK_RATE", "4.5")
	v.SetDefault("INVESTMENT_CHURCH_TAX_RATE", "9")
	v.SetDefault("RATE_LIMIT_REQUESTS", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Projection.HorizonYears < 0 {
		return fmt.Errorf("PROJECTION_HORIZON_YEARS must not be negative")
	}

	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be greater than 0")
	}

	decimals := map[string]string{
		"PROJECTION_VALUE_GROWTH":      c.Projection.ValueGrowthRate,
		"PROJECTION_RENT_GROWTH":       c.Projection.RentGrowthRate,
		"PROJECTION_MARGINAL_TAX_RATE": c.Projection.MarginalTaxRate,
		"INVESTMENT_FALLBACK_RATE":     c.Investment.FallbackRate,
		"INVESTMENT_CHURCH_TAX_RATE":   c.Investment.ChurchTaxPercent,
	}
	for key, value := range decimals {
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", key, err)
		}
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"PROJECTION_CACHE_TTL":       c.Projection.CacheTTL,
		"RATE_LIMIT_WINDOW":          c.RateLimit.Window,
		"HEALTH_CHECK_TIMEOUT":       c.Health.Timeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// ValidateDatabase checks the settings needed by processes that talk to Postgres
func (c *Config) ValidateDatabase() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// RedisAddr returns the address of the Redis server
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// GetValueGrowthRate returns the default appreciation rate as a fraction
func (c *Config) GetValueGrowthRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Projection.ValueGrowthRate)
	return rate
}

// GetRentGrowthRate returns the default rent growth rate as a fraction
func (c *Config) GetRentGrowthRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Projection.RentGrowthRate)
	return rate
}

// GetMarginalTaxRate returns the default marginal tax rate as a fraction
func (c *Config) GetMarginalTaxRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Projection.MarginalTaxRate)
	return rate
}

// GetFallbackInterestRate returns the interest rate in percent used when the rate matrix has no entry
func (c *Config) GetFallbackInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Investment.FallbackRate)
	return rate
}

// GetChurchTaxPercent returns the default church tax rate in percent
func (c *Config) GetChurchTaxPercent() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Investment.ChurchTaxPercent)
	return rate
}

// GetCacheTTL returns how long projections stay cached
func (c *Config) GetCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Projection.CacheTTL)
	return ttl
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Server.ReadTimeout)
	return timeout
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Server.WriteTimeout)
	return timeout
}

// GetConnMaxLifetime returns the database connection lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	lifetime, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return lifetime
}

// GetRateLimitWindow returns the rate limiter refill window as duration
func (c *Config) GetRateLimitWindow() time.Duration {
	window, _ := time.ParseDuration(c.RateLimit.Window)
	return window
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetSchedulerLocation returns the scheduler's time zone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
