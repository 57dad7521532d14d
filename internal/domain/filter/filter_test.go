package filter_test

import (
	"testing"

	"github.com/kickdirtbb/framing/internal/domain/filter"
	"github.com/kickdirtbb/framing/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func f(v float64) *float64 { return &v }

func event(desc string, catcher int64) model.PitchEvent {
	return model.PitchEvent{
		GamePK:      745001,
		CatcherID:   catcher,
		PlateX:      f(0.1),
		PlateZ:      f(2.4),
		SzTop:       f(3.4),
		SzBot:       f(1.6),
		Description: desc,
		PitchType:   "FF",
		Stand:       "R",
		HomeTeam:    "NYY",
		AwayTeam:    "BOS",
	}
}

func TestCalled(t *testing.T) {
	Convey("Given a mix of raw pitch events", t, func() {
		missingX := event(model.Ball, 2)
		missingX.PlateX = nil
		missingTop := event(model.CalledStrike, 2)
		missingTop.SzTop = nil

		events := []model.PitchEvent{
			event(model.CalledStrike, 1),
			event("swinging_strike", 1),
			event("foul", 1),
			event(model.Ball, 0),
			missingX,
			missingTop,
			event(model.Ball, 2),
		}
		before := append([]model.PitchEvent(nil), events...)

		Convey("When filtering for called pitches", func() {
			out := filter.Called(events)

			Convey("Then only complete called strikes and balls remain, in order", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].CatcherID, ShouldEqual, 1)
				So(out[0].IsCalledStrike(), ShouldBeTrue)
				So(out[1].CatcherID, ShouldEqual, 2)
				So(out[1].IsBall(), ShouldBeTrue)
			})

			Convey("Then geometry and display fields are copied", func() {
				So(out[0].Geometry, ShouldResemble, model.Geometry{PlateX: 0.1, PlateZ: 2.4, SzTop: 3.4, SzBot: 1.6})
				So(out[0].PitchType, ShouldEqual, "FF")
				So(out[0].HomeTeam, ShouldEqual, "NYY")
				So(out[0].AwayTeam, ShouldEqual, "BOS")
			})

			Convey("Then the input is not modified", func() {
				So(events, ShouldResemble, before)
			})
		})

		Convey("When filtering an empty batch", func() {
			out := filter.Called(nil)

			Convey("Then the result is empty but not nil", func() {
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestForCatcherGame(t *testing.T) {
	Convey("Given called pitches from two catchers in two games", t, func() {
		pitches := []model.CalledPitch{
			{GamePK: 1, CatcherID: 10},
			{GamePK: 1, CatcherID: 20},
			{GamePK: 2, CatcherID: 10},
			{GamePK: 1, CatcherID: 10},
		}

		Convey("When selecting catcher 10 in game 1", func() {
			out := filter.ForCatcherGame(pitches, 10, 1)

			Convey("Then only that pair is returned", func() {
				So(out, ShouldHaveLength, 2)
				for _, p := range out {
					So(p.CatcherID, ShouldEqual, 10)
					So(p.GamePK, ShouldEqual, 1)
				}
			})
		})

		Convey("When selecting a pair that never appears", func() {
			Convey("Then nothing is returned", func() {
				So(filter.ForCatcherGame(pitches, 20, 2), ShouldBeEmpty)
			})
		})
	})
}
