// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Cache     CacheConfig
	Session   SessionConfig
	Scheduler SchedulerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
	// PublicHost is used by swagger to build the doc.json URL
	PublicHost string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds the secret shared with the identity provider that issues access tokens
type JWTConfig struct {
	Secret string
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// CacheConfig holds read-side cache settings
type CacheConfig struct {
	// Driver is either "redis" or "memory"
	Driver string
	// TTL is the staleness window of cached reads
	TTL time.Duration
}

// SessionConfig holds play session settings
type SessionConfig struct {
	// Driver is either "redis" or "memory"
	Driver string
	TTL    time.Duration
}

// SchedulerConfig holds background job schedule settings
type SchedulerConfig struct {
	ReconcileCron string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPort, err := intEnv("DB_PORT", "")
	if err != nil {
		return nil, err
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", "8080"); err != nil {
		return nil, err
	}
	cfg.Server.PublicHost = envOr("SERVER_PUBLIC_HOST", fmt.Sprintf("localhost:%d", cfg.Server.Port))

	cfg.Logging.Level = envOr("LOG_LEVEL", "info")

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Redis configuration (cache, sessions, task queue)
	cfg.Redis.Host = envOr("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional
	if cfg.Redis.DB, err = intEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	// SMTP configuration (worker only)
	cfg.SMTP.Host = envOr("SMTP_HOST", "localhost")
	if cfg.SMTP.Port, err = intEnv("SMTP_PORT", "587"); err != nil {
		return nil, err
	}
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME") // optional
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD") // optional
	cfg.SMTP.From = envOr("SMTP_FROM", "noreply@learnpath.local")

	// Cache and session configuration
	cfg.Cache.Driver = envOr("CACHE_DRIVER", "redis")
	if cfg.Cache.TTL, err = durationEnv("CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	cfg.Session.Driver = envOr("SESSION_DRIVER", "redis")
	if cfg.Session.TTL, err = durationEnv("SESSION_TTL", "2h"); err != nil {
		return nil, err
	}
	if err := validateDriver("CACHE_DRIVER", cfg.Cache.Driver); err != nil {
		return nil, err
	}
	if err := validateDriver("SESSION_DRIVER", cfg.Session.Driver); err != nil {
		return nil, err
	}

	cfg.Scheduler.ReconcileCron = envOr("RECONCILE_CRON", "0 3 * * *")

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the host:port address of Redis
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intEnv parses an integer variable. An empty fallback makes the variable required.
func intEnv(key, fallback string) (int, error) {
	raw := envOr(key, fallback)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOr(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func validateDriver(key, driver string) error {
	if driver != "redis" && driver != "memory" {
		return fmt.Errorf("invalid %s: must be 'redis' or 'memory'", key)
	}
	return nil
}

// parseOrigins splits a comma-separated origin list, defaulting to all origins
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
