// Package report fetches catcher framing records from a running server and
// renders them as a ranked table.
package report

import (
	"errors"
	"time"
)

// Defaults for the report command.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTop     = 25
	DefaultTimeout = 2 * time.Minute
)

var (
	// ErrServer is returned when the server answers with an unexpected status.
	ErrServer = errors.New("unexpected server response")
	// ErrUnknownSort is returned for an unsupported sort key.
	ErrUnknownSort = errors.New("unknown sort key")
)

// Config holds configuration for one report run.
type Config struct {
	BaseURL string        // Base URL of the service
	Date    string        // Game date, empty for the server default
	Sort    string        // shadow, extra, lost or net
	Top     int           // Rows to print, 0 for all
	Timeout time.Duration // HTTP request timeout
	JSON    bool          // Print raw JSON instead of a table
}
