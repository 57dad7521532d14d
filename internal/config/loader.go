package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix     = "FRAMING_"
	EnvConfigFile = "FRAMING_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if FRAMING_CONFIG is set
//  3. env (prefix FRAMING_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// FRAMING_FETCH_TIMEOUT -> fetch_timeout. Flat keys, underscores preserved.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.FetchTimeout <= 0:
		return fmt.Errorf("%w: fetch_timeout must be positive", ErrInvalidConfig)
	case c.LookupTimeout <= 0:
		return fmt.Errorf("%w: lookup_timeout must be positive", ErrInvalidConfig)
	case c.FetchAttempts < 1:
		return fmt.Errorf("%w: fetch_attempts must be at least 1", ErrInvalidConfig)
	case c.LookupWorkers < 1:
		return fmt.Errorf("%w: lookup_workers must be at least 1", ErrInvalidConfig)
	case c.MinCalledPitches < 1:
		return fmt.Errorf("%w: min_called_pitches must be at least 1", ErrInvalidConfig)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	for name, raw := range map[string]string{"statcast_url": c.StatcastURL, "people_url": c.PeopleURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL", ErrInvalidConfig, name)
		}
	}
	return nil
}
