// Package config defines service configuration and its loading.
//
// Conventions:
//   - New returns defaults; Load layers a YAML file and FRAMING_* env vars on top.
//   - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// StatcastURL is the Baseball Savant search CSV endpoint.
	StatcastURL string `koanf:"statcast_url"`
	// PeopleURL is the MLB Stats API people collection; ids are appended.
	PeopleURL string `koanf:"people_url"`

	// FetchTimeout bounds a single Statcast download attempt.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	// FetchAttempts is the total number of Statcast download attempts.
	FetchAttempts int `koanf:"fetch_attempts"`
	// LookupTimeout bounds a single player name lookup.
	LookupTimeout time.Duration `koanf:"lookup_timeout"`
	// LookupWorkers caps concurrent name lookups per request.
	LookupWorkers int `koanf:"lookup_workers"`

	// MinCalledPitches is the per catcher-game sample threshold.
	MinCalledPitches int `koanf:"min_called_pitches"`

	// RequestTimeout bounds a whole HTTP request.
	RequestTimeout time.Duration `koanf:"request_timeout"`
	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":5000",
		StatcastURL:      "https://baseballsavant.mlb.com/statcast_search/csv",
		PeopleURL:        "https://statsapi.mlb.com/api/v1/people",
		FetchTimeout:     60 * time.Second,
		FetchAttempts:    2,
		LookupTimeout:    5 * time.Second,
		LookupWorkers:    8,
		MinCalledPitches: 5,
		RequestTimeout:   90 * time.Second,
		CORSOrigins:      []string{"*"},
	}
}
