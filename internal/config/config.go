// Package config handles chat client configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration structure for the chat client.
type Config struct {
	// Server settings for the remote message store.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Chat settings
	Chat ChatConfig `yaml:"chat" mapstructure:"chat"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// ServerConfig contains settings for the platform REST API.
type ServerConfig struct {
	// BaseURL is the API root, e.g. https://api.example.org/api.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Token is the bearer token sent as "Authorization: Token <token>".
	Token string `yaml:"token" mapstructure:"token"`

	// Timeout bounds each request to the store.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ChatConfig contains messaging behavior settings.
type ChatConfig struct {
	// UserID identifies the current user against the directory.
	UserID string `yaml:"user_id" mapstructure:"user_id"`

	// PollInterval is how often the message collection is re-fetched.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// CaseID optionally associates sent messages with a legal case.
	CaseID string `yaml:"case_id" mapstructure:"case_id"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TUIConfig contains widget settings.
type TUIConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// ShowTimestamps shows time-of-day stamps on list rows and bubbles.
	ShowTimestamps bool `yaml:"show_timestamps" mapstructure:"show_timestamps"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8095/api",
			Timeout: 10 * time.Second,
		},
		Chat: ChatConfig{
			PollInterval: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		TUI: TUIConfig{
			Theme:          "default",
			ShowTimestamps: true,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.Server.BaseURL)
	if base == "" {
		return fmt.Errorf("server.base_url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return fmt.Errorf("server.base_url is not a valid URL: %w", err)
	}

	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server.timeout must be at least 1s")
	}

	if c.Chat.PollInterval < 500*time.Millisecond {
		return fmt.Errorf("chat.poll_interval must be at least 500ms")
	}

	switch c.TUI.Theme {
	case "default", "high-contrast":
	default:
		return fmt.Errorf("tui.theme must be one of default, high-contrast")
	}

	return nil
}
