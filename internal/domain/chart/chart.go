// Package chart builds the plot-ready payload for one catcher-game. Only
// shadow-zone pitches are charted.
package chart

import (
	"fmt"
	"sort"

	"github.com/kickdirtbb/framing/internal/domain/aggregate"
	"github.com/kickdirtbb/framing/internal/domain/model"
	"github.com/kickdirtbb/framing/internal/domain/types"
	"github.com/kickdirtbb/framing/internal/domain/zone"
)

// Point styles.
const (
	MarkerStrike = "circle"
	MarkerBall   = "x"
	LineRight    = "solid"
	LineLeft     = "dotted"
)

// NoShadowMessage is reported when none of the pitches is borderline.
const NoShadowMessage = "No shadow zone pitch data available (borderline pitches)"

// Reference zone drawn behind every chart, in feet.
var referenceZone = types.ZoneOutline{ //nolint:gochecknoglobals
	Top:        3.5,
	Bottom:     1.5,
	HalfWidth:  zone.PlateHalfWidth,
	PlateWidth: 0.56,
}

// Build returns chart data for the called pitches of one catcher-game.
func Build(playerName, date string, pitches []model.CalledPitch) types.ChartData {
	data := types.ChartData{
		Title:  fmt.Sprintf("%s\nShadow Zone Summary - %s", playerName, date),
		Player: playerName,
		Date:   date,
		Points: []types.ChartPoint{},
		Legend: []types.LegendEntry{},
		Zone:   referenceZone,
	}

	seenTypes := make(map[string]struct{})
	var strikes int
	for _, p := range zone.ClassifyAll(pitches) {
		if !p.InShadowZone {
			continue
		}
		pt := point(p)
		if p.IsCalledStrike() {
			strikes++
		}
		if pt.Flagged && p.IsCalledStrike() {
			data.Summary.ExtraStrikes++
		}
		if pt.Flagged && p.IsBall() {
			data.Summary.LostStrikes++
		}
		data.Points = append(data.Points, pt)
		seenTypes[p.PitchType] = struct{}{}
	}

	data.Summary.N = len(data.Points)
	if data.Summary.N == 0 {
		data.Message = NoShadowMessage
		return data
	}
	data.Summary.CalledStrikeRate = aggregate.Round3(float64(strikes) / float64(data.Summary.N))
	data.Legend = legend(seenTypes)

	return data
}

func point(p model.ClassifiedPitch) types.ChartPoint {
	pt := types.ChartPoint{
		PlateX:      p.PlateX,
		PlateZ:      p.PlateZ,
		PitchType:   p.PitchType,
		Stand:       p.Stand,
		Description: p.Description,
		TrueStrike:  p.InStrikeZone,
		Color:       PitchColor(p.PitchType),
		Marker:      MarkerBall,
		Line:        LineLeft,
	}
	if p.IsCalledStrike() {
		pt.Marker = MarkerStrike
		pt.Flagged = !p.InStrikeZone
	} else {
		pt.Flagged = p.InStrikeZone
	}
	if p.Stand == "R" {
		pt.Line = LineRight
	}
	return pt
}

func legend(seen map[string]struct{}) []types.LegendEntry {
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		if _, ok := pitchColors[k]; ok {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)

	out := make([]types.LegendEntry, len(kinds))
	for i, k := range kinds {
		out[i] = types.LegendEntry{PitchType: k, Color: pitchColors[k]}
	}
	return out
}
