package config

import (
	"fmt"
	"slices"
	"time"

	pkgconfig "github.com/utafrali/LocalBizGo/pkg/config"
	"github.com/utafrali/LocalBizGo/pkg/database"
	"github.com/utafrali/LocalBizGo/pkg/middleware"
)

const (
	defaultJWTSecret     = "change-this-to-a-secure-secret"
	defaultAdminPassword = "admin1234"
	minAdminPassword     = 12
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

var drivers = []string{DriverFile, DriverMemory, DriverBadger, DriverRedis, DriverPostgres}

// Config holds all configuration for the directory server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Record store
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	BadgerDir   string `env:"BADGER_DIR" envDefault:"./data/badger"`

	// Redis
	RedisHost      string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort      int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"localbiz:collection:"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"localbiz"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"localbiz"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"localbiz"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"30"`
	SlowQueryThresholdMs  int   `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"200"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Language model
	LLMBaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	LLMAPIKey      string        `env:"LLM_API_KEY" envDefault:""`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"gemini-1.5-flash"`
	LLMTemperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMMaxRetries  int           `env:"LLM_MAX_RETRIES" envDefault:"2"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-IP limits on the chat and auth endpoints. RPS 0 disables them.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
	// CIDRs or IPs of reverse proxies whose X-Forwarded-For is believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// One-time admin seeding
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@gmail.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin1234"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return LoadWithPrefix("")
}

// LoadWithPrefix reads configuration from environment variables carrying
// prefix, falling back to envDefault for unset keys.
func LoadWithPrefix(prefix string) (*Config, error) {
	cfg := &Config{}
	var err error
	if prefix == "" {
		err = pkgconfig.Load(cfg)
	} else {
		err = pkgconfig.LoadWithPrefix(cfg, prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("load localbiz config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !slices.Contains(drivers, c.StoreDriver) {
		return fmt.Errorf("STORE_DRIVER must be one of %v, got %q", drivers, c.StoreDriver)
	}
	if c.StoreDriver == DriverFile && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required for the file store")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %g", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	if _, err := middleware.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	// Outside development an explicit, strong JWT secret and admin password are mandatory.
	if c.Environment != "development" {
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", c.Environment)
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(c.JWTSecret))
		}
		// The admin seed endpoint is public, so the seeded password must not be guessable.
		if c.AdminPassword == defaultAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be explicitly set via environment variable in %q mode", c.Environment)
		}
		if len(c.AdminPassword) < minAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters long, got %d", minAdminPassword, len(c.AdminPassword))
		}
	}
	return nil
}

// PostgresConfig returns the pool configuration for the postgres store.
func (c *Config) PostgresConfig() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// RateLimitConfig returns the rate limiter settings. TrustedProxies was
// checked by Load, so a parse error cannot occur here.
func (c *Config) RateLimitConfig() middleware.RateLimitConfig {
	proxies, _ := middleware.ParseTrustedProxies(c.TrustedProxies)
	return middleware.RateLimitConfig{
		RPS:            c.RateLimitRPS,
		Burst:          c.RateLimitBurst,
		TrustedProxies: proxies,
	}
}

// RedisConfig returns the client configuration for the redis store.
func (c *Config) RedisConfig() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPass,
		DB:       c.RedisDB,
	}
}
