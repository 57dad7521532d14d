package api

import "errors"

// ErrInvalidParam is returned when a path or query parameter cannot be parsed.
var ErrInvalidParam = errors.New("invalid parameter")
