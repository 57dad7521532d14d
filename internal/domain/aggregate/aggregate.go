// Package aggregate turns called pitches into per-catcher, per-game framing
// summaries.
package aggregate

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/kickdirtbb/framing/internal/domain/metadata"
	"github.com/kickdirtbb/framing/internal/domain/model"
	"github.com/kickdirtbb/framing/internal/domain/types"
	"github.com/kickdirtbb/framing/internal/domain/zone"
	"github.com/kickdirtbb/framing/pkg/logger"
	"github.com/kickdirtbb/framing/pkg/metrics"
)

const (
	defaultMinCalledPitches = 5
	defaultWorkers          = 8
)

// NameLookup resolves a player's display name.
type NameLookup interface {
	PlayerName(ctx context.Context, id int64) (string, error)
}

// Aggregator groups called pitches and computes framing metrics.
type Aggregator struct {
	names     NameLookup
	minCalled int
	workers   int
	logger    logger.Logger
}

// New creates an Aggregator. names may be nil, in which case every catcher
// gets a placeholder name.
func New(names NameLookup, opts ...Option) *Aggregator {
	a := &Aggregator{
		names:     names,
		minCalled: defaultMinCalledPitches,
		workers:   defaultWorkers,
		logger:    logger.Get().Named("aggregate"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FallbackName is the display name used when the lookup fails.
func FallbackName(id int64) string {
	return fmt.Sprintf("Player %d", id)
}

type groupKey struct {
	gamePK    int64
	catcherID int64
}

// Aggregate returns one record per catcher-game pair with at least the
// configured minimum of called pitches. Records follow the order in which
// games, then catchers within a game, first appear in pitches.
func (a *Aggregator) Aggregate(ctx context.Context, date string, pitches []model.CalledPitch) []types.CatcherGameMetrics {
	start := time.Now()
	defer func() {
		metrics.RecordAggregationLatency(float64(time.Since(start).Milliseconds()))
	}()

	keys, groups := group(pitches)

	out := make([]types.CatcherGameMetrics, 0, len(keys))
	var ids []int64
	seenID := make(map[int64]struct{})

	for _, k := range keys {
		rows := groups[k]
		if len(rows) < a.minCalled {
			metrics.RecordCatcherGameSkipped()
			a.logger.Debug(ctx, "skipping catcher-game with small sample",
				logger.Int64("catcher_id", k.catcherID),
				logger.Int64("game_pk", k.gamePK),
				logger.Int("called_pitches", len(rows)),
			)
			continue
		}

		m := summarize(zone.ClassifyAll(rows))
		m.ID = k.catcherID
		m.GamePK = k.gamePK
		m.Date = date
		m.Team = metadata.ResolveTeam(rows)
		m.Matchup = metadata.Matchup(rows)
		out = append(out, m)

		if _, ok := seenID[k.catcherID]; !ok {
			seenID[k.catcherID] = struct{}{}
			ids = append(ids, k.catcherID)
		}
	}

	names := a.resolveNames(ctx, ids)
	for i := range out {
		out[i].PlayerName = names[out[i].ID]
		metrics.RecordCatcherGameEmitted()
	}
	metrics.UpdateLastCatcherCount(len(out))

	return out
}

// Name resolves a single catcher's display name, falling back to a
// placeholder on any lookup error.
func (a *Aggregator) Name(ctx context.Context, id int64) string {
	if a.names == nil {
		return FallbackName(id)
	}
	name, err := a.names.PlayerName(ctx, id)
	if err != nil || name == "" {
		metrics.RecordNameLookupFailure()
		reason := logger.String("reason", "empty name")
		if err != nil {
			reason = logger.Error(err)
		}
		a.logger.Warn(ctx, "player name lookup failed, using placeholder",
			logger.Int64("catcher_id", id),
			reason,
		)
		return FallbackName(id)
	}
	return name
}

// resolveNames looks up every id with at most a.workers lookups in flight.
func (a *Aggregator) resolveNames(ctx context.Context, ids []int64) map[int64]string {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	workers := a.workers
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan int64)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				name := a.Name(ctx, id)
				mu.Lock()
				names[id] = name
				mu.Unlock()
			}
		}()
	}
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return names
}

func group(pitches []model.CalledPitch) ([]groupKey, map[groupKey][]model.CalledPitch) {
	var (
		games    []int64
		catchers = make(map[int64][]int64)
		groups   = make(map[groupKey][]model.CalledPitch)
	)
	for _, p := range pitches {
		k := groupKey{gamePK: p.GamePK, catcherID: p.CatcherID}
		if _, ok := catchers[p.GamePK]; !ok {
			games = append(games, p.GamePK)
			catchers[p.GamePK] = nil
		}
		if _, ok := groups[k]; !ok {
			catchers[p.GamePK] = append(catchers[p.GamePK], p.CatcherID)
		}
		groups[k] = append(groups[k], p)
	}

	keys := make([]groupKey, 0, len(groups))
	for _, g := range games {
		for _, c := range catchers[g] {
			keys = append(keys, groupKey{gamePK: g, catcherID: c})
		}
	}
	return keys, groups
}

func summarize(rows []model.ClassifiedPitch) types.CatcherGameMetrics {
	var shadow, shadowStrikes, strikes, extra, lost int
	for _, p := range rows {
		if p.IsCalledStrike() {
			strikes++
			if !p.InStrikeZone {
				extra++
			}
		}
		if p.IsBall() && p.InStrikeZone {
			lost++
		}
		if p.InShadowZone {
			shadow++
			if p.IsCalledStrike() {
				shadowStrikes++
			}
		}
	}

	return types.CatcherGameMetrics{
		CalledStrikeRate:   Round3(rate(shadowStrikes, shadow)),
		TotalStrikeRate:    Round3(rate(strikes, len(rows))),
		ExtraStrikes:       extra,
		LostStrikes:        lost,
		TotalCalledPitches: len(rows),
		ShadowZonePitches:  shadow,
	}
}

func rate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Round3 rounds x to three decimals. Exact ties go to the even digit, so
// 5/16 publishes as 0.312.
func Round3(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 3, 64), 64)
	if err != nil {
		return x
	}
	return r
}
