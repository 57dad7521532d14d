package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kickdirtbb/framing/pkg/logger"
)

// Run checks the server, fetches the day's records, ranks them and writes
// the report to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) error {
	runID := uuid.NewString()
	log := logger.Get().Named("report")
	start := time.Now()

	log.Info(ctx, "starting report",
		logger.String("run_id", runID),
		logger.String("url", cfg.BaseURL),
		logger.String("date", cfg.Date),
		logger.String("sort", cfg.Sort),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	records, err := client.Catchers(ctx, cfg.Date)
	if err != nil {
		return fmt.Errorf("fetching catchers: %w", err)
	}

	ranked, err := Rank(records, cfg.Sort)
	if err != nil {
		return err
	}
	ranked = Top(ranked, cfg.Top)

	log.Info(ctx, "report ready",
		logger.String("run_id", runID),
		logger.Int("records", len(records)),
		logger.Int("shown", len(ranked)),
		logger.Duration("elapsed", time.Since(start)),
	)

	if cfg.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No catcher-games with enough called pitches.")
		return err
	}
	date := cfg.Date
	if date == "" {
		date = ranked[0].Date
	}
	if _, err := fmt.Fprintf(w, "Catcher framing, %s (sorted by %s, %d of %d)\n", date, cfg.Sort, len(ranked), len(records)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, RenderTable(ranked))
	return err
}
