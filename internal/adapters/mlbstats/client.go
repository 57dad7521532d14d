// Package mlbstats looks up player metadata on the MLB Stats API.
package mlbstats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kickdirtbb/framing/pkg/metrics"
)

// DefaultPeopleURL is the people endpoint; a player id is appended.
const DefaultPeopleURL = "https://statsapi.mlb.com/api/v1/people"

const (
	metricsSource  = "people"
	defaultTimeout = 5 * time.Second
	maxErrorBody   = 256
)

var (
	// ErrNotFound is returned when the API has no person for the id.
	ErrNotFound = errors.New("player not found")
	// ErrStatus is returned on a non-200 response.
	ErrStatus = errors.New("unexpected people status")
)

// Client resolves player names.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each lookup.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for baseURL, or DefaultPeopleURL when empty.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultPeopleURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type peopleResponse struct {
	People []struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"people"`
}

// PlayerName returns the full name of the player with the given id.
func (c *Client) PlayerName(ctx context.Context, id int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordUpstreamLatency(metricsSource, float64(time.Since(start).Milliseconds()))
	}()

	name, err := c.lookup(ctx, id)
	if err != nil {
		metrics.RecordUpstreamError(metricsSource)
		return "", err
	}
	return name, nil
}

func (c *Client) lookup(ctx context.Context, id int64) (string, error) {
	url := c.baseURL + "/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status=%d, body=%s", ErrStatus, resp.StatusCode, string(body))
	}

	var out peopleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(out.People) == 0 || strings.TrimSpace(out.People[0].FullName) == "" {
		return "", fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	return out.People[0].FullName, nil
}
