package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kickdirtbb/framing/internal/domain/types"
)

// Sort keys.
const (
	SortShadow = "shadow"
	SortExtra  = "extra"
	SortLost   = "lost"
	SortNet    = "net"
)

// SortKeys lists the supported sort keys.
func SortKeys() []string {
	return []string{SortShadow, SortExtra, SortLost, SortNet}
}

// Rank returns a sorted copy of records, best first. Ties are broken by
// shadow sample size, then by name.
func Rank(records []types.CatcherGameMetrics, key string) ([]types.CatcherGameMetrics, error) {
	var less func(a, b types.CatcherGameMetrics) (bool, bool)
	switch strings.ToLower(key) {
	case SortShadow, "":
		less = func(a, b types.CatcherGameMetrics) (bool, bool) {
			return a.CalledStrikeRate > b.CalledStrikeRate, a.CalledStrikeRate == b.CalledStrikeRate
		}
	case SortExtra:
		less = func(a, b types.CatcherGameMetrics) (bool, bool) {
			return a.ExtraStrikes > b.ExtraStrikes, a.ExtraStrikes == b.ExtraStrikes
		}
	case SortLost:
		// Fewest lost strikes first.
		less = func(a, b types.CatcherGameMetrics) (bool, bool) {
			return a.LostStrikes < b.LostStrikes, a.LostStrikes == b.LostStrikes
		}
	case SortNet:
		less = func(a, b types.CatcherGameMetrics) (bool, bool) {
			return a.NetStrikes() > b.NetStrikes(), a.NetStrikes() == b.NetStrikes()
		}
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSort, key, strings.Join(SortKeys(), ", "))
	}

	out := append([]types.CatcherGameMetrics(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		if before, tie := less(out[i], out[j]); !tie {
			return before
		}
		if out[i].ShadowZonePitches != out[j].ShadowZonePitches {
			return out[i].ShadowZonePitches > out[j].ShadowZonePitches
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out, nil
}

// Top keeps the first n records; n <= 0 keeps all.
func Top(records []types.CatcherGameMetrics, n int) []types.CatcherGameMetrics {
	if n <= 0 || n >= len(records) {
		return records
	}
	return records[:n]
}
