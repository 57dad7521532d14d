// Package savant downloads pitch-level tracking data from the Baseball
// Savant search CSV endpoint.
package savant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kickdirtbb/framing/internal/domain/model"
	"github.com/kickdirtbb/framing/pkg/logger"
	"github.com/kickdirtbb/framing/pkg/metrics"
)

// DefaultURL is the public search CSV endpoint.
const DefaultURL = "https://baseballsavant.mlb.com/statcast_search/csv"

const (
	metricsSource       = "statcast"
	defaultTimeout      = 60 * time.Second
	defaultAttempts     = 2
	defaultInitialDelay = 2 * time.Second
	defaultMaxDelay     = 30 * time.Second
	backoffFactor       = 1.5
	maxErrorBody        = 512
)

// Client fetches one day of pitches at a time.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	attempts     int
	initialDelay time.Duration
	maxDelay     time.Duration
	userAgent    string
	logger       logger.Logger
}

// New creates a Statcast client for baseURL. An empty baseURL selects DefaultURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{},
		timeout:      defaultTimeout,
		attempts:     defaultAttempts,
		initialDelay: defaultInitialDelay,
		maxDelay:     defaultMaxDelay,
		userAgent:    "framing/1.0 (+https://github.com/kickdirtbb/framing)",
		logger:       logger.Get().Named("savant"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pitches returns every pitch thrown on date (YYYY-MM-DD) across regular
// season, postseason and spring training games. An empty day is not an error.
func (c *Client) Pitches(ctx context.Context, date string) ([]model.PitchEvent, error) {
	target := c.searchURL(date)

	var events []model.PitchEvent
	err := c.withRetry(ctx, func() (bool, error) {
		var (
			retry bool
			err   error
		)
		events, retry, err = c.fetch(ctx, target)
		return retry, err
	})
	if err != nil {
		metrics.RecordUpstreamError(metricsSource)
		return nil, err
	}

	metrics.RecordPitchesFetched(len(events))
	c.logger.Info(ctx, "statcast day downloaded",
		logger.String("date", date),
		logger.Int("rows", len(events)),
	)
	return events, nil
}

func (c *Client) searchURL(date string) string {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("hfGT", "R|PO|S|")
	q.Set("player_type", "pitcher")
	q.Set("game_date_gt", date)
	q.Set("game_date_lt", date)
	q.Set("min_pitches", "0")
	q.Set("min_results", "0")
	q.Set("group_by", "name")
	q.Set("sort_col", "pitches")
	q.Set("sort_order", "desc")
	q.Set("min_abs", "0")
	q.Set("type", "details")
	return c.baseURL + "?" + q.Encode()
}

// fetch performs one download attempt. The boolean reports whether a failure
// is worth retrying.
func (c *Client) fetch(ctx context.Context, target string) ([]model.PitchEvent, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordUpstreamLatency(metricsSource, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("%w: status=%d, body=%s", ErrStatus, resp.StatusCode, string(body))
		return nil, resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests, err
	}

	events, err := Parse(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return events, false, nil
}

// withRetry runs fn until it succeeds, reports a permanent failure, or the
// attempt budget is spent. The delay grows by backoffFactor up to maxDelay.
func (c *Client) withRetry(ctx context.Context, fn func() (bool, error)) error {
	var lastErr error
	delay := c.initialDelay

	for attempt := 1; attempt <= c.attempts; attempt++ {
		retry, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || attempt == c.attempts {
			break
		}

		metrics.RecordUpstreamRetry(metricsSource)
		c.logger.Warn(ctx, "statcast download failed, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Error(err),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("statcast download canceled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * backoffFactor)
		if delay > c.maxDelay {
			delay = c.maxDelay
		}
	}

	return fmt.Errorf("statcast download failed: %w", lastErr)
}
