package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kickdirtbb/framing/internal/domain/types"
)

// Client talks to the framing HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/health", &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("%w: health status %q", ErrServer, body.Status)
	}
	return nil
}

// Catchers fetches the catcher-game records for date. An empty date lets
// the server pick its default.
func (c *Client) Catchers(ctx context.Context, date string) ([]types.CatcherGameMetrics, error) {
	path := "/api/statcast/catchers"
	if date != "" {
		path += "?" + url.Values{"date": {date}}.Encode()
	}
	var out []types.CatcherGameMetrics
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s: status=%d, body=%s", ErrServer, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
