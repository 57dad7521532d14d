// Package service orchestrates a framing request: fetch one day of pitches,
// filter the called ones, then aggregate or chart them.
package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kickdirtbb/framing/internal/domain/aggregate"
	"github.com/kickdirtbb/framing/internal/domain/chart"
	"github.com/kickdirtbb/framing/internal/domain/filter"
	"github.com/kickdirtbb/framing/internal/domain/model"
	"github.com/kickdirtbb/framing/internal/domain/types"
	"github.com/kickdirtbb/framing/pkg/logger"
	"github.com/kickdirtbb/framing/pkg/metrics"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// PitchSource provides the raw pitches of one day.
type PitchSource interface {
	Pitches(ctx context.Context, date string) ([]model.PitchEvent, error)
}

// Service implements the dependencies of the HTTP API.
type Service struct {
	source     PitchSource
	names      aggregate.NameLookup
	aggregator *aggregate.Aggregator

	minCalled int
	workers   int
	startedAt time.Time
	logger    logger.Logger

	catcherRequests  atomic.Int64
	plotRequests     atomic.Int64
	upstreamFailures atomic.Int64
	recovered        atomic.Int64

	mu          sync.RWMutex
	lastDate    string
	lastRecords int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMinCalledPitches sets the sample threshold for a catcher-game record.
func WithMinCalledPitches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minCalled = n
		}
	}
}

// WithLookupWorkers bounds concurrent player name lookups.
func WithLookupWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. names may be nil; catchers then get placeholder names.
func New(source PitchSource, names aggregate.NameLookup, opts ...Option) *Service {
	s := &Service{
		source:    source,
		names:     names,
		minCalled: 5,
		workers:   8,
		startedAt: time.Now(),
		logger:    logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.aggregator = aggregate.New(names,
		aggregate.WithMinCalledPitches(s.minCalled),
		aggregate.WithWorkers(s.workers),
		aggregate.WithLogger(s.logger.Named("aggregate")),
	)
	return s
}

// ValidateDate checks that date is a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrBadRequest, date)
	}
	return nil
}

// Catchers returns framing metrics for every catcher-game on date. On an
// upstream failure it returns an empty slice together with an error wrapping
// ErrUpstream.
func (s *Service) Catchers(ctx context.Context, date string) (out []types.CatcherGameMetrics, err error) {
	s.catcherRequests.Add(1)
	defer s.recoverInto(ctx, "catchers", &err, func() { out = []types.CatcherGameMetrics{} })

	if err := ValidateDate(date); err != nil {
		return []types.CatcherGameMetrics{}, err
	}

	called, err := s.calledPitches(ctx, date)
	if err != nil {
		return []types.CatcherGameMetrics{}, err
	}

	out = s.aggregator.Aggregate(ctx, date, called)

	s.mu.Lock()
	s.lastDate = date
	s.lastRecords = len(out)
	s.mu.Unlock()

	s.logger.Info(ctx, "catchers aggregated",
		logger.String("date", date),
		logger.Int("called_pitches", len(called)),
		logger.Int("records", len(out)),
	)
	return out, nil
}

// Plot returns chart data for one catcher in one game.
func (s *Service) Plot(ctx context.Context, catcherID, gamePK int64, date string) (data types.ChartData, err error) {
	s.plotRequests.Add(1)
	defer s.recoverInto(ctx, "plot", &err, func() { data = types.ChartData{} })

	if err := ValidateDate(date); err != nil {
		return types.ChartData{}, err
	}

	called, err := s.calledPitches(ctx, date)
	if err != nil {
		return types.ChartData{}, err
	}

	rows := filter.ForCatcherGame(called, catcherID, gamePK)
	if len(rows) == 0 {
		return types.ChartData{}, fmt.Errorf("%w: catcher=%d game=%d date=%s", ErrNotFound, catcherID, gamePK, date)
	}

	name := s.aggregator.Name(ctx, catcherID)
	return chart.Build(name, date, rows), nil
}

func (s *Service) calledPitches(ctx context.Context, date string) ([]model.CalledPitch, error) {
	events, err := s.source.Pitches(ctx, date)
	if err != nil {
		s.upstreamFailures.Add(1)
		metrics.RecordErrorByComponent("service", "upstream")
		s.logger.Error(ctx, "pitch data fetch failed",
			logger.String("date", date),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	called := filter.Called(events)
	metrics.RecordPitchesCalled(len(called))
	return called, nil
}

// recoverInto turns a panic in a request path into ErrInternal.
func (s *Service) recoverInto(ctx context.Context, op string, err *error, reset func()) {
	r := recover()
	if r == nil {
		return
	}
	s.recovered.Add(1)
	metrics.RecordErrorByComponent("service", "panic")
	s.logger.Error(ctx, "recovered from panic",
		logger.String("op", op),
		logger.Any("panic", r),
		logger.String("stack", string(debug.Stack())),
	)
	reset()
	*err = fmt.Errorf("%w: %s: %v", ErrInternal, op, r)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"uptimeSeconds":    int64(time.Since(s.startedAt).Seconds()),
		"minCalledPitches": s.minCalled,
		"lookupWorkers":    s.workers,
		"catcherRequests":  s.catcherRequests.Load(),
		"plotRequests":     s.plotRequests.Load(),
		"upstreamFailures": s.upstreamFailures.Load(),
		"recoveredPanics":  s.recovered.Load(),
		"lastDate":         s.lastDate,
		"lastRecords":      s.lastRecords,
	}
}
