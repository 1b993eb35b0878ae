// Package config loads dashboard configuration from environment variables,
// an optional .env file and an optional YAML settings file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	DataDir      string
	Addr         string
	SettingsFile string
	LogLevel     string
	LogFormat    string
	Cache        bool

	Settings Settings
}

// Load loads configuration from environment variables.
// It loads .env from the current directory if present; an explicit envPath must exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cache, err := parseBoolEnv("DASHBOARD_CACHE", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      getEnvOrDefault("DASHBOARD_DATA_DIR", "."),
		Addr:         getEnvOrDefault("DASHBOARD_ADDR", "127.0.0.1:8501"),
		SettingsFile: os.Getenv("DASHBOARD_SETTINGS"),
		LogLevel:     getEnvOrDefault("DASHBOARD_LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("DASHBOARD_LOG_FORMAT", "console"),
		Cache:        cache,
		Settings:     DefaultSettings(),
	}

	if cfg.SettingsFile != "" {
		settings, err := LoadSettings(cfg.SettingsFile)
		if err != nil {
			return nil, err
		}
		cfg.Settings = settings
	}
	return cfg, nil
}

// Validate validates the configuration and returns every problem in one error.
func (c *Config) Validate() error {
	var problems []string

	if c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty")
	} else if info, err := os.Stat(c.DataDir); err != nil {
		problems = append(problems, fmt.Sprintf("data directory %q is not accessible: %v", c.DataDir, err))
	} else if !info.IsDir() {
		problems = append(problems, fmt.Sprintf("data directory %q is not a directory", c.DataDir))
	}

	if c.Addr == "" {
		problems = append(problems, "listen address cannot be empty")
	} else if i := strings.LastIndex(c.Addr, ":"); i < 0 {
		problems = append(problems, fmt.Sprintf("invalid listen address %q: missing port", c.Addr))
	} else if port, err := strconv.Atoi(c.Addr[i+1:]); err != nil || port < 0 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid listen address %q: port must be between 0 and 65535", c.Addr))
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be console or json", c.LogFormat))
	}

	problems = append(problems, c.Settings.problems()...)

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}
	return parsed, nil
}
