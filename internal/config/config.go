// Package config loads jotter settings from YAML files and the environment.
package config

import "time"

// Config is the merged configuration.
type Config struct {
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Summarizer SummarizerConfig `mapstructure:"summarizer" yaml:"summarizer"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Display    DisplayConfig    `mapstructure:"display" yaml:"display"`
}

// StoreConfig selects and locates the persistence slot.
type StoreConfig struct {
	Adapter    string `mapstructure:"adapter" yaml:"adapter"` // fs, bolt or sqlite
	Path       string `mapstructure:"path" yaml:"path"`
	Slot       string `mapstructure:"slot" yaml:"slot"`
	Versioning bool   `mapstructure:"versioning" yaml:"versioning"`
	ReadOnly   bool   `mapstructure:"read_only" yaml:"read_only"`
}

// SummarizerConfig configures the completion backend.
// Remote, when set, is the base URL of a jotter server that holds the key.
type SummarizerConfig struct {
	APIKey    string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Model     string        `mapstructure:"model" yaml:"model"`
	MaxTokens int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Remote    string        `mapstructure:"remote" yaml:"remote"`
}

// ServerConfig configures `jotter serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// DisplayConfig controls rendering.
type DisplayConfig struct {
	Locale   string `mapstructure:"locale" yaml:"locale"`
	TimeZone string `mapstructure:"time_zone" yaml:"time_zone"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Adapter: "fs",
			Slot:    "notes",
		},
		Summarizer: SummarizerConfig{
			Model:     "gpt-3.5-turbo",
			MaxTokens: 100,
			Timeout:   30 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Display: DisplayConfig{
			Locale: "id",
		},
	}
}
