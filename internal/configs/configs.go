package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment            string
	AppURL                 string
	DatabaseDSN            string
	DatabaseLogLevel       string
	BatchSize              int
	JWTSecret              string
	JWTTenantClaim         string
	AdminRole              string
	RateLimit              int
	RateLimitBackend       string
	RedisAddr              string
	RedisKeyPrefix         string
	LogLevel               string
	LogFormat              string
	LogFile                string
	EnableMetrics          bool
	TracingEndpoint        string
	ShutdownTimeoutSeconds int
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	batchSize, err := getEnvAsInt("BATCH_SIZE", 50)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 600)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Environment:            getEnv("ENVIRONMENT", "development"),
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		DatabaseLogLevel:       getEnv("DB_LOG_LEVEL", "warn"),
		BatchSize:              batchSize,
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTTenantClaim:         getEnv("JWT_TENANT_CLAIM", "tenant_id"),
		AdminRole:              getEnv("AUTH_ADMIN_ROLE", "ADMIN"),
		RateLimit:              rateLimit,
		RateLimitBackend:       getEnv("RATE_LIMIT_BACKEND", "memory"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "task_service:ratelimit"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		LogFile:                getEnv("LOG_FILE", ""),
		EnableMetrics:          getEnvAsBool("ENABLE_METRICS", true),
		TracingEndpoint:        getEnv("TRACING_ENDPOINT", ""),
		ShutdownTimeoutSeconds: shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be greater than 0")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.RateLimitBackend != "memory" && c.RateLimitBackend != "redis" {
		return fmt.Errorf("invalid RATE_LIMIT_BACKEND: %s (valid: memory, redis)", c.RateLimitBackend)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s (valid: debug, info, warn, error)", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid LOG_FORMAT: %s (valid: json, console)", c.LogFormat)
	}

	switch c.DatabaseLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("invalid DB_LOG_LEVEL: %s (valid: silent, error, warn, info)", c.DatabaseLogLevel)
	}

	if c.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
