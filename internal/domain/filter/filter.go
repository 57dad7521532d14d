// Package filter selects the pitches that carry a framing decision.
package filter

import "github.com/kickdirtbb/framing/internal/domain/model"

// Called returns the events with a binary umpire call, a known catcher and
// complete geometry. The input slice is left untouched.
func Called(events []model.PitchEvent) []model.CalledPitch {
	out := make([]model.CalledPitch, 0, len(events))
	for i := range events {
		if p, ok := toCalled(&events[i]); ok {
			out = append(out, p)
		}
	}
	return out
}

func toCalled(e *model.PitchEvent) (model.CalledPitch, bool) {
	if e.Description != model.CalledStrike && e.Description != model.Ball {
		return model.CalledPitch{}, false
	}
	if e.CatcherID == 0 {
		return model.CalledPitch{}, false
	}
	if e.PlateX == nil || e.PlateZ == nil || e.SzTop == nil || e.SzBot == nil {
		return model.CalledPitch{}, false
	}
	return model.CalledPitch{
		GamePK:    e.GamePK,
		CatcherID: e.CatcherID,
		Geometry: model.Geometry{
			PlateX: *e.PlateX,
			PlateZ: *e.PlateZ,
			SzTop:  *e.SzTop,
			SzBot:  *e.SzBot,
		},
		Description:  e.Description,
		PitchType:    e.PitchType,
		Stand:        e.Stand,
		FieldingTeam: e.FieldingTeam,
		HomeTeam:     e.HomeTeam,
		AwayTeam:     e.AwayTeam,
	}, true
}

// ForCatcherGame returns the pitches received by one catcher in one game.
func ForCatcherGame(pitches []model.CalledPitch, catcherID, gamePK int64) []model.CalledPitch {
	var out []model.CalledPitch
	for _, p := range pitches {
		if p.CatcherID == catcherID && p.GamePK == gamePK {
			out = append(out, p)
		}
	}
	return out
}
