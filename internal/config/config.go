// Package config provides configuration for the market-data client and its
// CLI. Settings layer in the usual order: built-in defaults, then an
// optional JSON config file, then COINBASER_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the complete application configuration.
type Config struct {
	// BaseURL overrides the API host. Ignored when empty; Sandbox then
	// decides between the production and sandbox hosts.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Sandbox selects the public sandbox host instead of production.
	Sandbox bool `json:"sandbox,omitempty"`

	// UserAgent identifies this client to the API. The API documentation
	// requires a descriptive value and may reject requests without one.
	UserAgent string `json:"user_agent" validate:"required"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `json:"timeout_seconds,omitempty" validate:"min=1"`

	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level      string `json:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `json:"format,omitempty" validate:"omitempty,oneof=json text"`
	Output     string `json:"output,omitempty" validate:"omitempty,oneof=stdout stderr file"`
	FilePath   string `json:"file_path,omitempty"`
	MaxSize    int    `json:"max_size,omitempty"`    // MB
	MaxBackups int    `json:"max_backups,omitempty"` // files
	MaxAge     int    `json:"max_age,omitempty"`     // days
	Compress   bool   `json:"compress,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UserAgent:      "coinbaser/1.0",
		TimeoutSeconds: 30,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load builds the configuration from defaults, the JSON file at path (if
// it exists) and environment overrides, then validates the result. An
// empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Config file is optional.
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from COINBASER_* environment variables.
func (c *Config) applyEnv() {
	if val := os.Getenv("COINBASER_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("COINBASER_SANDBOX"); val != "" {
		if sandbox, err := strconv.ParseBool(val); err == nil {
			c.Sandbox = sandbox
		}
	}
	if val := os.Getenv("COINBASER_USER_AGENT"); val != "" {
		c.UserAgent = val
	}
	if val := os.Getenv("COINBASER_TIMEOUT_SECONDS"); val != "" {
		if timeout, err := strconv.Atoi(val); err == nil {
			c.TimeoutSeconds = timeout
		}
	}
	if val := os.Getenv("COINBASER_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("COINBASER_LOG_FORMAT"); val != "" {
		c.Logging.Format = val
	}
	if val := os.Getenv("COINBASER_LOG_OUTPUT"); val != "" {
		c.Logging.Output = val
	}
	if val := os.Getenv("COINBASER_LOG_FILE"); val != "" {
		c.Logging.FilePath = val
	}
}

// Validate checks the configuration's struct tags plus the cross-field
// rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Logging.Output == "file" && c.Logging.FilePath == "" {
		return fmt.Errorf("invalid configuration: logging.file_path is required when output is %q", "file")
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
