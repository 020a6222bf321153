package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Sentinel errors returned by Load for settings the service cannot start without.
var (
	ErrMissingDatabaseURL = errors.New("environment variable DATABASE_URL (or POSTGRES_URI) not set")
	ErrMissingBasePath    = errors.New("environment variable BASE_PATH not set")
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	ModuleName  string
	Host        string
	Port        string

	DBUrl           string
	PoolSize        int
	MaxOverflow     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	LogLevel         string
	EnableConsoleLog bool
	EnableFileLog    bool
	BasePath         string
	MountDir         string

	EnableCORS bool
	CORSURLs   []string

	EnableMetrics   bool
	ContextTimeout  time.Duration
	ShutdownTimeout time.Duration

	Email EmailConfig
}

// EmailConfig holds settings for registration confirmation emails.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	InsecureSkipVerify bool
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LogsDir is where file logs are written: BASE_PATH/logs/MOUNT_DIR.
func (c *Config) LogsDir() string {
	return filepath.Join(c.BasePath, "logs", c.MountDir)
}

// MaxOpenConns is the hard cap on pooled connections (pool size plus overflow).
func (c *Config) MaxOpenConns() int {
	return c.PoolSize + c.MaxOverflow
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")

	// In production the environment is the only source; .env is a development aid.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		ModuleName:  getEnv("MODULE_NAME", "event-management-services"),
		Host:        getEnv("SERVICE_HOST", "0.0.0.0"),
		Port:        getEnv("SERVICE_PORT", getEnv("PORT", "8000")),

		DBUrl:           getEnv("DATABASE_URL", os.Getenv("POSTGRES_URI")),
		PoolSize:        getEnvAsInt("PG_POOL_SIZE", 20),
		MaxOverflow:     getEnvAsInt("PG_MAX_OVERFLOW", 10),
		ConnMaxLifetime: getEnvAsDuration("PG_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: getEnvAsDuration("PG_CONN_MAX_IDLE_TIME", 5*time.Minute),

		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		EnableConsoleLog: getEnvAsBool("ENABLE_CONSOLE_LOG", true),
		EnableFileLog:    getEnvAsBool("ENABLE_FILE_LOG", false),
		BasePath:         os.Getenv("BASE_PATH"),
		MountDir:         getEnv("MOUNT_DIR", "workflow-management"),

		EnableCORS: getEnvAsBool("ENABLE_CORS", true),
		CORSURLs:   splitList(os.Getenv("CORS_URLS")),

		EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
		ContextTimeout:  getEnvAsDuration("CONTEXT_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		Email: EmailConfig{
			Provider:           getEnv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			InsecureSkipVerify: getEnvAsBool("SES_INSECURE_SKIP_VERIFY", false),
		},
	}

	if cfg.DBUrl == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.BasePath == "" {
		return nil, ErrMissingBasePath
	}
	if cfg.PoolSize < 1 {
		cfg.PoolSize = 1
	}
	if cfg.MaxOverflow < 0 {
		cfg.MaxOverflow = 0
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
