package service

import "errors"

var (
	// ErrUpstream wraps failures of the pitch data source.
	ErrUpstream = errors.New("pitch data source unavailable")
	// ErrNotFound is returned when a catcher-game has no called pitches.
	ErrNotFound = errors.New("no data found for this catcher/game")
	// ErrBadRequest is returned for malformed request parameters.
	ErrBadRequest = errors.New("bad request")
	// ErrInternal wraps a recovered panic.
	ErrInternal = errors.New("internal error")
)
