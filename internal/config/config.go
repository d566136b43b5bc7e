package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Offline      OfflineConfig
	Redis        RedisConfig
	Backend      BackendConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// OfflineConfig tunes the offline cache and action queue.
type OfflineConfig struct {
	// Store selects the persistence medium: "sqlite" or "redis".
	Store                string
	SQLitePath           string
	DefaultTTLHours      int
	FlushIntervalSeconds int
	ProbeIntervalSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BackendConfig points at the hosted backend the app syncs with.
type BackendConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
	HealthPath            string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "repairshop-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Offline: OfflineConfig{
			Store:                getEnv("OFFLINE_STORE", "sqlite"),
			SQLitePath:           getEnv("OFFLINE_SQLITE_PATH", "offline.db"),
			DefaultTTLHours:      getEnvAsInt("OFFLINE_DEFAULT_TTL_HOURS", 24),
			FlushIntervalSeconds: getEnvAsInt("OFFLINE_FLUSH_INTERVAL_SECONDS", 30),
			ProbeIntervalSeconds: getEnvAsInt("OFFLINE_PROBE_INTERVAL_SECONDS", 15),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Backend: BackendConfig{
			BaseURL:               getEnv("BACKEND_BASE_URL", "http://127.0.0.1:9000"),
			RequestTimeoutSeconds: getEnvAsInt("BACKEND_REQUEST_TIMEOUT_SECONDS", 10),
			HealthPath:            getEnv("BACKEND_HEALTH_PATH", "/health"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// DefaultTTL returns the cache entry lifetime.
func (o OfflineConfig) DefaultTTL() time.Duration {
	if o.DefaultTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(o.DefaultTTLHours) * time.Hour
}

// FlushInterval returns the periodic queue flush cadence.
func (o OfflineConfig) FlushInterval() time.Duration {
	if o.FlushIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(o.FlushIntervalSeconds) * time.Second
}

// ProbeInterval returns the connectivity probe cadence.
func (o OfflineConfig) ProbeInterval() time.Duration {
	if o.ProbeIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(o.ProbeIntervalSeconds) * time.Second
}

// RequestTimeout returns the backend call timeout.
func (b BackendConfig) RequestTimeout() time.Duration {
	if b.RequestTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
