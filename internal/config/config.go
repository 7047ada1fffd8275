// Package config loads and validates configuration at startup.
// Fail-fast: an invalid or missing required value aborts the process.
//
// Values come from the environment, an optional .env file and an optional
// config.yaml in . or ./config, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// Config holds all runtime configuration for the marketplace service.
type Config struct {
	Port     string `mapstructure:"MARKETPLACE_PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	DataFile      string `mapstructure:"DATA_FILE"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RedisURL      string `mapstructure:"REDIS_URL"` // also enables event publishing
	MongoURL      string `mapstructure:"MONGO_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	SnapshotIntervalHours int    `mapstructure:"SNAPSHOT_INTERVAL_HOURS"` // 0 disables snapshots
	SnapshotDir           string `mapstructure:"SNAPSHOT_DIR"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var defaults = map[string]any{
	"MARKETPLACE_PORT":        "8083",
	"GRPC_PORT":               "9083",
	"ENV":                     "development",
	"LOG_LEVEL":               "info",
	"STORE_BACKEND":           BackendFile,
	"DATA_FILE":               "data.json",
	"DATABASE_URL":            "",
	"REDIS_URL":               "",
	"MONGO_URL":               "",
	"MONGO_DATABASE":          "marketplace",
	"SNAPSHOT_INTERVAL_HOURS": 24,
	"SNAPSHOT_DIR":            "snapshots",
	"MAX_REQUESTS_PER_MIN":    120,
}

// Load reads configuration and returns a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required when STORE_BACKEND=file")
		}
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND=redis")
		}
	case BackendMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when STORE_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of file, memory, postgres, redis, mongo, got %q", c.StoreBackend)
	}

	if c.SnapshotIntervalHours < 0 {
		return fmt.Errorf("SNAPSHOT_INTERVAL_HOURS must be zero or a positive integer, got %d", c.SnapshotIntervalHours)
	}
	if c.MaxRequestsPerMin < 1 {
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be a positive integer, got %d", c.MaxRequestsPerMin)
	}
	if c.Port == "" {
		return fmt.Errorf("MARKETPLACE_PORT must not be empty")
	}
	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }
