package config

import (
	"errors"
)

var (
	// ErrInvalidConfig wraps every Validate failure, e.g. a non-positive
	// min_called_pitches or an unparsable statcast_url.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading the FRAMING_CONFIG file or the
	// FRAMING_ environment.
	ErrLoadConfig = errors.New("load config failed")
)
