package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
	WebSocket WebSocketConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds desktop session configuration.
type DesktopConfig struct {
	ProfilePath    string `envconfig:"DESKTOP_PROFILE"` // Empty uses the built-in profile
	MaxSessions    int    `envconfig:"DESKTOP_MAX_SESSIONS" default:"256"`
	ViewportWidth  int    `envconfig:"DESKTOP_VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight int    `envconfig:"DESKTOP_VIEWPORT_HEIGHT" default:"720"`
}

// WebSocketConfig holds per-connection limits.
type WebSocketConfig struct {
	MessagesPerSecond int   `envconfig:"WS_MESSAGES_PER_SECOND" default:"60"`
	Burst             int   `envconfig:"WS_BURST" default:"120"`
	MaxMessageBytes   int64 `envconfig:"WS_MAX_MESSAGE_BYTES" default:"4096"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Desktop.MaxSessions < 0 {
		return fmt.Errorf("invalid config: DESKTOP_MAX_SESSIONS must not be negative")
	}
	if c.Desktop.ViewportWidth <= 0 || c.Desktop.ViewportHeight <= 0 {
		return fmt.Errorf("invalid config: desktop viewport must be positive, got %dx%d",
			c.Desktop.ViewportWidth, c.Desktop.ViewportHeight)
	}
	if c.WebSocket.MaxMessageBytes <= 0 {
		return fmt.Errorf("invalid config: WS_MAX_MESSAGE_BYTES must be positive")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			MaxSessions:    256,
			ViewportWidth:  1280,
			ViewportHeight: 720,
		},
		WebSocket: WebSocketConfig{
			MessagesPerSecond: 60,
			Burst:             120,
			MaxMessageBytes:   4096,
		},
	}
}
