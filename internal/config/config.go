// Package config provides the configuration schema and loader for the
// redline server.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps [time.Duration] so YAML values can be written in the
// usual "30s" / "5m" notation. Bare integers are rejected.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped [time.Duration].
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// LogLevel controls log verbosity for the redline server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for redline. It is
// typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Engine   EngineConfig   `yaml:"engine"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// EngineConfig tunes the correction engine.
type EngineConfig struct {
	// SuggestionLimit caps the number of spelling alternatives per
	// suggestion. Zero applies the engine default (3).
	SuggestionLimit int `yaml:"suggestion_limit"`

	// DiffWindow is the word-diff lookahead window in tokens. Zero
	// applies the engine default (4).
	DiffWindow int `yaml:"diff_window"`

	// DictionaryPath optionally replaces the embedded word list with a
	// file of one word per line.
	DictionaryPath string `yaml:"dictionary_path"`
}

// SessionsConfig tunes server-side editing sessions.
type SessionsConfig struct {
	// HistoryCap is the maximum number of undo snapshots retained per
	// session. Zero applies the history default (50).
	HistoryCap int `yaml:"history_cap"`

	// IdleTTL is how long an untouched session survives before the
	// janitor evicts it. Zero applies the default (30m).
	IdleTTL Duration `yaml:"idle_ttl"`
}

// Default returns a Config populated with the defaults used when no
// config file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
			LogLevel:   LogInfo,
		},
	}
}
