package aggregate

import "github.com/kickdirtbb/framing/pkg/logger"

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMinCalledPitches sets the smallest sample that produces a record.
func WithMinCalledPitches(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.minCalled = n
		}
	}
}

// WithWorkers bounds the number of concurrent name lookups.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithLogger sets a custom logger for the aggregator.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}
