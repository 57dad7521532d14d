package savant

import "errors"

var (
	// ErrStatus is returned when the search endpoint answers with a non-200 status.
	ErrStatus = errors.New("unexpected statcast status")
	// ErrMalformed is returned when the CSV body cannot be parsed.
	ErrMalformed = errors.New("malformed statcast csv")
)
