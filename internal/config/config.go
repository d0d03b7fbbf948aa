package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	S3       S3Config
	Webhook  WebhookConfig
	Document DocumentConfig
	Sentry   SentryConfig
	Email    EmailConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port          string
	Env           string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
	Audience      string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// S3Config holds S3 / object-lake storage configuration
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Container is the logical root prefix inside Bucket the object lake
	// writes under (see internal/platform/storage.LakeWriter).
	Container string
}

// WebhookConfig holds the internal fan-out webhook configuration.
type WebhookConfig struct {
	Secret     string
	APIBaseURL string
}

// DocumentConfig holds application-document validation configuration.
type DocumentConfig struct {
	SizeCapBytes int64
}

// SentryConfig holds error-reporting configuration.
type SentryConfig struct {
	DSN string
}

// EmailConfig holds the best-effort notification email client configuration.
type EmailConfig struct {
	APIKey    string
	FromEmail string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "recruiting"),
			Password:        getEnv("DB_PASSWORD", "recruiting"),
			DBName:          getEnv("DB_NAME", "recruiting"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 30),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
			AccessExpiry:  getEnvAsDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
			RefreshExpiry: getEnvAsDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
			Issuer:        getEnv("JWT_ISSUER", "recruiting-platform"),
			Audience:      getEnv("JWT_AUDIENCE", "recruiting-platform-web"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "eu-central"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Container: getEnv("OBJECT_STORE_CONTAINER", "recruiting-lake"),
		},
		Webhook: WebhookConfig{
			Secret:     getEnv("WEBHOOK_SECRET", ""),
			APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		},
		Document: DocumentConfig{
			SizeCapBytes: getEnvAsInt64("DOCUMENT_SIZE_CAP_BYTES", 10*1024*1024),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
		Email: EmailConfig{
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("RESEND_FROM_EMAIL", "no-reply@recruiting.example.com"),
		},
	}

	// Validate required fields
	if cfg.JWT.AccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}

	if cfg.Server.Env == "production" {
		if len(cfg.JWT.AccessSecret) < 48 || len(cfg.JWT.RefreshSecret) < 48 {
			return nil, fmt.Errorf("JWT secrets must be at least 48 bytes in production")
		}
		if cfg.Webhook.Secret == "" || len(cfg.Webhook.Secret) < 48 {
			return nil, fmt.Errorf("WEBHOOK_SECRET must be at least 48 bytes in production")
		}
		for _, origin := range cfg.Server.AllowedOrigins {
			if origin == "*" {
				return nil, fmt.Errorf("ALLOWED_ORIGINS cannot be '*' in production")
			}
		}
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
