package aggregate_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kickdirtbb/framing/internal/domain/aggregate"
	"github.com/kickdirtbb/framing/internal/domain/model"
	"github.com/kickdirtbb/framing/pkg/logger"
	"github.com/kickdirtbb/framing/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type stubNames struct {
	mu       sync.Mutex
	names    map[int64]string
	calls    map[int64]int
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func newStubNames(names map[int64]string) *stubNames {
	return &stubNames{names: names, calls: make(map[int64]int)}
}

func (s *stubNames) PlayerName(_ context.Context, id int64) (string, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		cur := s.maxSeen.Load()
		if n <= cur || s.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	name, ok := s.names[id]
	if !ok {
		return "", errors.New("people lookup: 503")
	}
	return name, nil
}

func pitch(game, catcher int64, desc string, x, z float64) model.CalledPitch {
	return model.CalledPitch{
		GamePK:      game,
		CatcherID:   catcher,
		Geometry:    model.Geometry{PlateX: x, PlateZ: z, SzTop: 3.5, SzBot: 1.5},
		Description: desc,
		PitchType:   "FF",
		Stand:       "R",
		HomeTeam:    "ATL",
		AwayTeam:    "NYM",
	}
}

// sixPitchGame covers every outcome: two extra strikes, one lost strike,
// three shadow pitches of which two are called strikes.
func sixPitchGame(game, catcher int64) []model.CalledPitch {
	return []model.CalledPitch{
		pitch(game, catcher, model.CalledStrike, 1.2, 2.5), // extra, outside shadow
		pitch(game, catcher, model.CalledStrike, 0.9, 2.5), // extra, shadow
		pitch(game, catcher, model.Ball, 0, 3.4),           // lost, shadow top edge
		pitch(game, catcher, model.CalledStrike, 0.6, 2.5), // strike, shadow right edge
		pitch(game, catcher, model.Ball, -1.5, 2.5),        // clear ball
		pitch(game, catcher, model.CalledStrike, 0, 2.5),   // heart
	}
}

func counterValue(name string) float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() == name {
			var total float64
			for _, m := range f.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total
		}
	}
	return 0
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	Convey("Given an aggregator with a name service", t, func() {
		names := newStubNames(map[int64]string{660670: "Sean Murphy", 543877: "Christian Vazquez"})
		agg := aggregate.New(names)

		Convey("When aggregating the six-pitch scenario", func() {
			out := agg.Aggregate(ctx, "2024-06-01", sixPitchGame(745001, 543877))

			Convey("Then one record carries the expected counts and rates", func() {
				So(out, ShouldHaveLength, 1)
				m := out[0]
				So(m.ID, ShouldEqual, 543877)
				So(m.PlayerName, ShouldEqual, "Christian Vazquez")
				So(m.GamePK, ShouldEqual, 745001)
				So(m.Date, ShouldEqual, "2024-06-01")
				So(m.ExtraStrikes, ShouldEqual, 2)
				So(m.LostStrikes, ShouldEqual, 1)
				So(m.ShadowZonePitches, ShouldEqual, 3)
				So(m.CalledStrikeRate, ShouldEqual, 0.667)
				So(m.TotalStrikeRate, ShouldEqual, 0.667)
				So(m.TotalCalledPitches, ShouldEqual, 6)
				So(m.Team, ShouldEqual, "ATL")
				So(m.Matchup, ShouldEqual, "NYM vs ATL")
			})
		})

		Convey("When a catcher has four called pitches", func() {
			out := agg.Aggregate(ctx, "2024-06-01", sixPitchGame(1, 660670)[:4])

			Convey("Then no record is produced", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When a catcher has exactly five called pitches", func() {
			out := agg.Aggregate(ctx, "2024-06-01", sixPitchGame(1, 660670)[:5])

			Convey("Then exactly one record is produced", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].TotalCalledPitches, ShouldEqual, 5)
			})
		})

		Convey("When no pitch lands in the shadow zone", func() {
			rows := []model.CalledPitch{
				pitch(1, 660670, model.CalledStrike, 0, 2.5),
				pitch(1, 660670, model.CalledStrike, 0.1, 2.4),
				pitch(1, 660670, model.Ball, -1.6, 2.5),
				pitch(1, 660670, model.Ball, 1.6, 2.5),
				pitch(1, 660670, model.Ball, 0, 5.0),
			}
			out := agg.Aggregate(ctx, "2024-06-01", rows)

			Convey("Then the shadow strike rate is zero", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ShadowZonePitches, ShouldEqual, 0)
				So(out[0].CalledStrikeRate, ShouldEqual, 0)
				So(out[0].TotalStrikeRate, ShouldEqual, 0.4)
			})
		})

		Convey("When the same input is aggregated twice", func() {
			in := append(sixPitchGame(1, 660670), sixPitchGame(2, 543877)...)
			first := agg.Aggregate(ctx, "2024-06-01", in)
			second := agg.Aggregate(ctx, "2024-06-01", in)

			Convey("Then the results are identical", func() {
				So(first, ShouldResemble, second)
			})
		})

		Convey("When there is nothing to aggregate", func() {
			out := agg.Aggregate(ctx, "2024-06-01", nil)

			Convey("Then an empty, non-nil slice is returned", func() {
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})

	Convey("Given several games with two catchers each", t, func() {
		names := newStubNames(map[int64]string{1: "A", 2: "B", 3: "C"})
		agg := aggregate.New(names)

		var in []model.CalledPitch
		in = append(in, sixPitchGame(200, 2)...)
		in = append(in, sixPitchGame(100, 1)...)
		in = append(in, sixPitchGame(200, 3)...)
		in = append(in, sixPitchGame(100, 2)...)

		Convey("When aggregating", func() {
			out := agg.Aggregate(ctx, "2024-06-01", in)

			Convey("Then records follow first appearance of game, then catcher", func() {
				So(out, ShouldHaveLength, 4)
				So([]int64{out[0].GamePK, out[1].GamePK, out[2].GamePK, out[3].GamePK}, ShouldResemble, []int64{200, 200, 100, 100})
				So([]int64{out[0].ID, out[1].ID, out[2].ID, out[3].ID}, ShouldResemble, []int64{2, 3, 1, 2})
			})

			Convey("Then each distinct catcher is looked up once", func() {
				So(names.calls[2], ShouldEqual, 1)
				So(names.calls[1], ShouldEqual, 1)
				So(names.calls[3], ShouldEqual, 1)
				So(out[0].PlayerName, ShouldEqual, "B")
				So(out[3].PlayerName, ShouldEqual, "B")
			})
		})
	})
}

func TestAggregateNameFailures(t *testing.T) {
	ctx := context.Background()

	Convey("Given a name service that fails for 660670", t, func() {
		names := newStubNames(map[int64]string{})
		agg := aggregate.New(names)
		before := counterValue("framing_catchers_name_lookup_failures_total")

		Convey("When aggregating a game caught by 660670", func() {
			out := agg.Aggregate(ctx, "2024-06-01", sixPitchGame(1, 660670))

			Convey("Then the record is still produced with a placeholder name", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].PlayerName, ShouldEqual, "Player 660670")
				So(out[0].ExtraStrikes, ShouldEqual, 2)
			})

			Convey("Then the failure is counted", func() {
				So(counterValue("framing_catchers_name_lookup_failures_total"), ShouldEqual, before+1)
			})
		})
	})

	Convey("Given a name service that answers with an empty name", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithOutput(&buf)), ShouldBeNil)
		Reset(func() { _ = logger.Init() })

		names := newStubNames(map[int64]string{77: ""})
		agg := aggregate.New(names, aggregate.WithLogger(logger.Get()))

		Convey("Then the placeholder is used and the warning names the reason", func() {
			So(agg.Name(ctx, 77), ShouldEqual, "Player 77")
			So(buf.String(), ShouldContainSubstring, `reason="empty name"`)
			So(buf.String(), ShouldNotContainSubstring, "error=")
		})
	})

	Convey("Given no name service at all", t, func() {
		agg := aggregate.New(nil)

		Convey("Then every catcher gets a placeholder", func() {
			out := agg.Aggregate(ctx, "2024-06-01", sixPitchGame(1, 42))
			So(out[0].PlayerName, ShouldEqual, aggregate.FallbackName(42))
		})
	})
}

func TestAggregateOptions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a lower sample threshold", t, func() {
		agg := aggregate.New(nil, aggregate.WithMinCalledPitches(2))

		Convey("Then two pitches are enough for a record", func() {
			So(agg.Aggregate(ctx, "d", sixPitchGame(1, 7)[:2]), ShouldHaveLength, 1)
			So(agg.Aggregate(ctx, "d", sixPitchGame(1, 7)[:1]), ShouldBeEmpty)
		})
	})

	Convey("Given a two-worker bound and many catchers", t, func() {
		known := make(map[int64]string)
		var in []model.CalledPitch
		for id := int64(1); id <= 20; id++ {
			known[id] = fmt.Sprintf("Catcher %d", id)
			in = append(in, sixPitchGame(id, id)...)
		}
		names := newStubNames(known)
		agg := aggregate.New(names, aggregate.WithWorkers(2))

		Convey("When aggregating", func() {
			out := agg.Aggregate(ctx, "d", in)

			Convey("Then every name is resolved without exceeding the bound", func() {
				So(out, ShouldHaveLength, 20)
				for _, m := range out {
					So(m.PlayerName, ShouldEqual, fmt.Sprintf("Catcher %d", m.ID))
				}
				So(names.maxSeen.Load(), ShouldBeLessThanOrEqualTo, 2)
			})
		})
	})
}

func TestRound3(t *testing.T) {
	Convey("Given rates to publish", t, func() {
		So(aggregate.Round3(2.0/3.0), ShouldEqual, 0.667)
		So(aggregate.Round3(1.0/3.0), ShouldEqual, 0.333)
		So(aggregate.Round3(0.4), ShouldEqual, 0.4)
		So(aggregate.Round3(0), ShouldEqual, 0)
		So(aggregate.Round3(1), ShouldEqual, 1)

		Convey("Then exact ties round to the even digit", func() {
			So(aggregate.Round3(0.0625), ShouldEqual, 0.062)
			So(aggregate.Round3(0.3125), ShouldEqual, 0.312)
			So(aggregate.Round3(0.1875), ShouldEqual, 0.188)
		})
	})

	Convey("Given sixteen heart pitches with five called strikes", t, func() {
		in := make([]model.CalledPitch, 0, 16)
		for i := 0; i < 16; i++ {
			desc := model.Ball
			if i < 5 {
				desc = model.CalledStrike
			}
			in = append(in, pitch(9, 9, desc, 0, 2.5))
		}

		Convey("Then the total strike rate publishes as 0.312", func() {
			out := aggregate.New(nil).Aggregate(context.Background(), "d", in)
			So(out, ShouldHaveLength, 1)
			So(out[0].TotalStrikeRate, ShouldEqual, 0.312)
			So(out[0].TotalCalledPitches, ShouldEqual, 16)
		})
	})
}
