package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// ProviderConfig contains the upstream completion API settings. Timeout is a
// pass-through to the HTTP client; the pipeline itself enforces none.
type ProviderConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig controls the identity fallback for local development. When
// AllowSynthetic is false the synthetic identity is ignored entirely.
type AuthConfig struct {
	AllowSynthetic bool              `yaml:"allow_synthetic"`
	Synthetic      SyntheticIdentity `yaml:"synthetic"`
}

// SyntheticIdentity is the fixed identity served when no platform headers are
// present and AllowSynthetic is set.
type SyntheticIdentity struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the configuration file. ${VAR} references in the
// file are expanded from the process environment before parsing, so secrets
// like the API key never live in the file itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.Expand(string(data), os.Getenv)

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider api_key must be set")
	}

	if c.Auth.AllowSynthetic && c.Auth.Synthetic.ID == "" {
		return fmt.Errorf("auth.allow_synthetic requires auth.synthetic.id")
	}

	return nil
}

// setDefaults sets default values for optional fields.
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 90 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}

	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://api.poe.com/v1"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 60 * time.Second
	}

	if c.Auth.Synthetic.Username == "" {
		c.Auth.Synthetic.Username = "test-user"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
