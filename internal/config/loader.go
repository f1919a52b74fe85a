package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a
// validated [Config]. It is a convenience wrapper around
// [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Unknown keys are rejected so typos in config files fail loudly.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It
// returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr must not be empty"))
	}
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Engine.SuggestionLimit < 0 {
		errs = append(errs, fmt.Errorf("engine.suggestion_limit must not be negative (got %d)", cfg.Engine.SuggestionLimit))
	}
	if cfg.Engine.DiffWindow < 0 {
		errs = append(errs, fmt.Errorf("engine.diff_window must not be negative (got %d)", cfg.Engine.DiffWindow))
	}
	if cfg.Engine.DictionaryPath != "" {
		if _, err := os.Stat(cfg.Engine.DictionaryPath); err != nil {
			errs = append(errs, fmt.Errorf("engine.dictionary_path: %w", err))
		}
	}

	if cfg.Sessions.HistoryCap < 0 {
		errs = append(errs, fmt.Errorf("sessions.history_cap must not be negative (got %d)", cfg.Sessions.HistoryCap))
	}
	if cfg.Sessions.IdleTTL < 0 {
		errs = append(errs, fmt.Errorf("sessions.idle_ttl must not be negative (got %s)", cfg.Sessions.IdleTTL))
	}

	return errors.Join(errs...)
}
