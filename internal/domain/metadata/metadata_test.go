package metadata_test

import (
	"testing"

	"github.com/kickdirtbb/framing/internal/domain/metadata"
	"github.com/kickdirtbb/framing/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func row(fielding, home, away string) model.CalledPitch {
	return model.CalledPitch{FieldingTeam: fielding, HomeTeam: home, AwayTeam: away}
}

func TestNormalizeTeam(t *testing.T) {
	Convey("Given raw team codes from tracking data", t, func() {
		Convey("Then legacy aliases map to canonical codes", func() {
			So(metadata.NormalizeTeam("ANA"), ShouldEqual, "LAA")
			So(metadata.NormalizeTeam("CHW"), ShouldEqual, "CWS")
			So(metadata.NormalizeTeam("SFG"), ShouldEqual, "SF")
			So(metadata.NormalizeTeam("AZ"), ShouldEqual, "ARI")
		})

		Convey("Then case and whitespace are normalized before lookup", func() {
			So(metadata.NormalizeTeam(" kcr "), ShouldEqual, "KC")
			So(metadata.NormalizeTeam("bos"), ShouldEqual, "BOS")
		})

		Convey("Then unknown codes pass through", func() {
			So(metadata.NormalizeTeam("XYZ"), ShouldEqual, "XYZ")
			So(metadata.NormalizeTeam(""), ShouldEqual, "")
		})
	})
}

func TestResolveTeam(t *testing.T) {
	Convey("Given rows for one catcher in one game", t, func() {
		Convey("When the fielding team is populated on every row", func() {
			rows := []model.CalledPitch{
				row("NYY", "NYY", "BOS"),
				row("NYY", "NYY", "BOS"),
				row("NY", "NYY", "BOS"),
			}

			Convey("Then the most frequent canonical code wins", func() {
				So(metadata.ResolveTeam(rows), ShouldEqual, "NYY")
			})
		})

		Convey("When only home and away are present", func() {
			rows := []model.CalledPitch{row("", "SDP", "LA")}

			Convey("Then the tie goes to the first field voted, home", func() {
				So(metadata.ResolveTeam(rows), ShouldEqual, "SD")
			})
		})

		Convey("When only the away team is present", func() {
			rows := []model.CalledPitch{row("", "", "CHW"), row("", "", "CHW")}

			Convey("Then the away team is used", func() {
				So(metadata.ResolveTeam(rows), ShouldEqual, "CWS")
			})
		})

		Convey("When no team field is populated", func() {
			Convey("Then UNK is returned", func() {
				So(metadata.ResolveTeam([]model.CalledPitch{row("", "", "")}), ShouldEqual, metadata.UnknownTeam)
				So(metadata.ResolveTeam(nil), ShouldEqual, metadata.UnknownTeam)
			})
		})
	})
}

func TestMatchup(t *testing.T) {
	Convey("Given the first row of a game", t, func() {
		Convey("Then both teams produce AWAY vs HOME", func() {
			So(metadata.Matchup([]model.CalledPitch{row("", "tbr", "NYY"), row("", "X", "Y")}), ShouldEqual, "NYY vs TB")
		})

		Convey("Then a missing away team produces vs HOME", func() {
			So(metadata.Matchup([]model.CalledPitch{row("", "BOS", "")}), ShouldEqual, "vs BOS")
		})

		Convey("Then a missing home team produces AWAY vs", func() {
			So(metadata.Matchup([]model.CalledPitch{row("", "", "BOS")}), ShouldEqual, "BOS vs")
		})

		Convey("Then no teams or no rows produce Game", func() {
			So(metadata.Matchup([]model.CalledPitch{row("NYY", "", "")}), ShouldEqual, "Game")
			So(metadata.Matchup(nil), ShouldEqual, "Game")
		})
	})
}
