package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the database settings for integration tests from TEST_DB_* variables.
// Unset variables are left empty so tests can fall back to a local default DSN.
func LoadTestConfig() *Config {
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Host = os.Getenv("TEST_DB_HOST")
	cfg.Database.User = os.Getenv("TEST_DB_USER")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("TEST_DB_NAME")
	cfg.Database.Port, _ = intEnv("TEST_DB_PORT", "3306")
	return cfg
}

// HasDatabase reports whether every TEST_DB_* connection setting is present
func (c *Config) HasDatabase() bool {
	return c.Database.Host != "" && c.Database.User != "" && c.Database.DBName != ""
}
