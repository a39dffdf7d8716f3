// Package config provides application configuration loaded from defaults,
// an optional YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	App      AppConfig      `yaml:"app"`
}

// DatabaseConfig holds the storage connection settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	// DSN, when set, is used as-is and the individual fields below are ignored.
	DSN            string        `yaml:"dsn"`
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DBName         string        `yaml:"dbname"`
	SSLMode        string        `yaml:"sslmode"`
	Path           string        `yaml:"path"` // sqlite file
	MaxOpenConns   int           `yaml:"max_open_conns"`
	MaxIdleConns   int           `yaml:"max_idle_conns"`
	ConnectRetries int           `yaml:"connect_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	Debug          bool          `yaml:"debug"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env        string `yaml:"env"`
	LogLevel   string `yaml:"log_level"`
	Migrations bool   `yaml:"migrations"`
	Seed       bool   `yaml:"seed"`
}

// ConnString returns the driver-specific connection string.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IsProduction reports whether the app runs in a production-like environment.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production" || a.Env == "staging"
}

// Default returns the configuration used when nothing is set: a local sqlite file.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Host:           "localhost",
			Port:           5432,
			User:           "records",
			Password:       "records",
			DBName:         "records",
			SSLMode:        "disable",
			Path:           "records.db",
			MaxOpenConns:   10,
			MaxIdleConns:   5,
			ConnectRetries: 5,
			RetryDelay:     2 * time.Second,
		},
		App: AppConfig{
			Env:        "development",
			LogLevel:   "info",
			Migrations: true,
		},
	}
}

// Load builds the configuration. path may be empty or point to a missing file,
// in which case only defaults and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}
	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	db := &cfg.Database
	db.Driver = strings.ToLower(getEnv("DB_DRIVER", db.Driver))
	db.DSN = getEnv("DATABASE_DSN", db.DSN)
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnvInt("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.DBName = getEnv("DB_NAME", db.DBName)
	db.SSLMode = getEnv("DB_SSLMODE", db.SSLMode)
	db.Path = getEnv("DB_PATH", db.Path)
	db.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.ConnectRetries = getEnvInt("DB_CONNECT_RETRIES", db.ConnectRetries)
	db.RetryDelay = getEnvDuration("DB_RETRY_DELAY", db.RetryDelay)
	db.Debug = getEnvBool("DB_DEBUG", db.Debug)

	app := &cfg.App
	app.Env = strings.ToLower(getEnv("APP_ENV", app.Env))
	app.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", app.LogLevel))
	app.Migrations = getEnvBool("MIGRATIONS", app.Migrations)
	app.Seed = getEnvBool("DB_SEED", app.Seed)
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.ConnString() == "" {
			return errors.New("sqlite requires DB_PATH or DATABASE_DSN")
		}
	case DriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return errors.New("postgres requires DB_HOST or DATABASE_DSN")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.ConnectRetries < 1 {
		c.Database.ConnectRetries = 1
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
