// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
//
// Matching tolerances and score thresholds are deliberately absent:
// they are part of the engine contract, not runtime options.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Reconcile     ReconcileConfig     `yaml:"reconcile"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ReconcileConfig holds batch-run settings.
type ReconcileConfig struct {
	// Workers controls how many transactions are evaluated
	// concurrently per run. 1 disables fan-out.
	Workers int `yaml:"workers"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECON_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("RECON_PORT", 8080),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("RECON_DB_PATH", "reconciliation.db"),
		},
		Reconcile: ReconcileConfig{
			Workers: getEnvInt("RECON_WORKERS", 1),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables.
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back
// to environment variables.
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills in zero values left by a sparse config file.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "reconciliation.db"
	}
	if c.Reconcile.Workers <= 0 {
		c.Reconcile.Workers = 1
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
