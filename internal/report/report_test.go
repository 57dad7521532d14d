package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kickdirtbb/framing/internal/domain/types"
	"github.com/kickdirtbb/framing/internal/report"
	"github.com/kickdirtbb/framing/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func sample() []types.CatcherGameMetrics {
	return []types.CatcherGameMetrics{
		{ID: 1, PlayerName: "Alvarez", Team: "NYM", Matchup: "NYM vs ATL", Date: "2024-06-01", CalledStrikeRate: 0.5, ExtraStrikes: 1, LostStrikes: 3, ShadowZonePitches: 20, TotalCalledPitches: 60},
		{ID: 2, PlayerName: "Murphy", Team: "ATL", Matchup: "NYM vs ATL", Date: "2024-06-01", CalledStrikeRate: 0.667, ExtraStrikes: 4, LostStrikes: 1, ShadowZonePitches: 18, TotalCalledPitches: 55},
		{ID: 3, PlayerName: "Raleigh", Team: "SEA", Matchup: "SEA vs TEX", Date: "2024-06-01", CalledStrikeRate: 0.667, ExtraStrikes: 2, LostStrikes: 0, ShadowZonePitches: 24, TotalCalledPitches: 70},
	}
}

func names(records []types.CatcherGameMetrics) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PlayerName
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given three catcher-games", t, func() {
		in := sample()

		Convey("When ranking by shadow strike rate", func() {
			out, err := report.Rank(in, report.SortShadow)

			Convey("Then ties fall back to the larger shadow sample", func() {
				So(err, ShouldBeNil)
				So(names(out), ShouldResemble, []string{"Raleigh", "Murphy", "Alvarez"})
			})

			Convey("Then the input order is untouched", func() {
				So(names(in), ShouldResemble, []string{"Alvarez", "Murphy", "Raleigh"})
			})
		})

		Convey("When ranking by extra strikes", func() {
			out, _ := report.Rank(in, report.SortExtra)
			So(names(out), ShouldResemble, []string{"Murphy", "Raleigh", "Alvarez"})
		})

		Convey("When ranking by lost strikes", func() {
			out, _ := report.Rank(in, report.SortLost)
			So(names(out), ShouldResemble, []string{"Raleigh", "Murphy", "Alvarez"})
		})

		Convey("When ranking by net strikes", func() {
			out, _ := report.Rank(in, report.SortNet)
			So(names(out), ShouldResemble, []string{"Murphy", "Raleigh", "Alvarez"})
		})

		Convey("When the sort key is unknown", func() {
			_, err := report.Rank(in, "framing")
			So(errors.Is(err, report.ErrUnknownSort), ShouldBeTrue)
		})

		Convey("When keeping the top two", func() {
			So(report.Top(in, 2), ShouldHaveLength, 2)
			So(report.Top(in, 0), ShouldHaveLength, 3)
			So(report.Top(in, 10), ShouldHaveLength, 3)
		})
	})
}

func TestRenderTable(t *testing.T) {
	Convey("Given ranked records", t, func() {
		out := report.RenderTable(sample()[1:2])

		Convey("Then the table carries the headline numbers", func() {
			So(out, ShouldContainSubstring, "Shadow CS%")
			So(out, ShouldContainSubstring, "Murphy")
			So(out, ShouldContainSubstring, "66.7%")
			So(out, ShouldContainSubstring, "+3")
			So(out, ShouldContainSubstring, "╭")
		})
	})
}

func newServer(status int, records []types.CatcherGameMetrics, gotDate *string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","timestamp":"2024-06-02T10:00:00Z"}`))
	})
	mux.HandleFunc("/api/statcast/catchers", func(w http.ResponseWriter, r *http.Request) {
		*gotDate = r.URL.Query().Get("date")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"code":"bad_request","message":"invalid date"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(records)
	})
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a framing server with one day of records", t, func() {
		var gotDate string
		srv := newServer(http.StatusOK, sample(), &gotDate)
		defer srv.Close()

		cfg := &report.Config{BaseURL: srv.URL, Date: "2024-06-01", Sort: report.SortNet, Top: 2, Timeout: time.Second}

		Convey("When running the table report", func() {
			var buf bytes.Buffer
			err := report.Run(ctx, cfg, &buf)

			Convey("Then the top rows are rendered for the requested date", func() {
				So(err, ShouldBeNil)
				So(gotDate, ShouldEqual, "2024-06-01")
				So(buf.String(), ShouldContainSubstring, "sorted by net, 2 of 3")
				So(buf.String(), ShouldContainSubstring, "Murphy")
				So(buf.String(), ShouldNotContainSubstring, "Alvarez")
			})
		})

		Convey("When running the JSON report", func() {
			cfg.JSON = true
			var buf bytes.Buffer
			err := report.Run(ctx, cfg, &buf)

			Convey("Then ranked records are printed as JSON", func() {
				So(err, ShouldBeNil)
				var out []types.CatcherGameMetrics
				So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
				So(names(out), ShouldResemble, []string{"Murphy", "Raleigh"})
			})
		})
	})

	Convey("Given a server with no games", t, func() {
		var gotDate string
		srv := newServer(http.StatusOK, []types.CatcherGameMetrics{}, &gotDate)
		defer srv.Close()

		Convey("Then the report says so", func() {
			var buf bytes.Buffer
			err := report.Run(ctx, &report.Config{BaseURL: srv.URL, Sort: report.SortShadow, Timeout: time.Second}, &buf)
			So(err, ShouldBeNil)
			So(gotDate, ShouldBeEmpty)
			So(buf.String(), ShouldContainSubstring, "No catcher-games")
		})
	})

	Convey("Given a server that rejects the date", t, func() {
		var gotDate string
		srv := newServer(http.StatusBadRequest, nil, &gotDate)
		defer srv.Close()

		Convey("Then the server error is surfaced", func() {
			err := report.Run(ctx, &report.Config{BaseURL: srv.URL, Date: "junk", Sort: report.SortShadow, Timeout: time.Second}, &bytes.Buffer{})
			So(errors.Is(err, report.ErrServer), ShouldBeTrue)
			So(strings.Contains(err.Error(), "invalid date"), ShouldBeTrue)
		})
	})

	Convey("Given no server at all", t, func() {
		Convey("Then the health check fails", func() {
			err := report.Run(ctx, &report.Config{BaseURL: "http://127.0.0.1:1", Sort: report.SortShadow, Timeout: time.Second}, &bytes.Buffer{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check failed")
		})
	})
}
