// Package types contains the response types shared by the service, the HTTP
// layer and the report client.
package types

// CatcherGameMetrics is the framing summary for one catcher in one game.
// CalledStrikeRate is the strike rate on shadow-zone pitches only.
type CatcherGameMetrics struct {
	ID                 int64   `json:"id"`
	PlayerName         string  `json:"player_name"`
	Team               string  `json:"team"`
	Matchup            string  `json:"matchup"`
	Date               string  `json:"date"`
	GamePK             int64   `json:"game_pk"`
	CalledStrikeRate   float64 `json:"called_strike_rate"`
	TotalStrikeRate    float64 `json:"total_strike_rate"`
	ExtraStrikes       int     `json:"extra_strikes"`
	LostStrikes        int     `json:"lost_strikes"`
	TotalCalledPitches int     `json:"total_called_pitches"`
	ShadowZonePitches  int     `json:"shadow_zone_pitches"`
}

// NetStrikes is extra strikes gained minus strikes lost.
func (m CatcherGameMetrics) NetStrikes() int {
	return m.ExtraStrikes - m.LostStrikes
}

// ChartPoint is one shadow-zone pitch on the per-game chart.
type ChartPoint struct {
	PlateX      float64 `json:"plate_x"`
	PlateZ      float64 `json:"plate_z"`
	PitchType   string  `json:"pitch_type"`
	Stand       string  `json:"stand"`
	Description string  `json:"description"`
	TrueStrike  bool    `json:"true_strike"`
	Color       string  `json:"color"`
	Marker      string  `json:"marker"`
	Line        string  `json:"line"`
	Flagged     bool    `json:"flagged"`
}

// ChartSummary holds the headline numbers printed under the chart.
type ChartSummary struct {
	CalledStrikeRate float64 `json:"called_strike_rate"`
	ExtraStrikes     int     `json:"extra_strikes"`
	LostStrikes      int     `json:"lost_strikes"`
	N                int     `json:"n"`
}

// LegendEntry maps a pitch type to its color.
type LegendEntry struct {
	PitchType string `json:"pitch_type"`
	Color     string `json:"color"`
}

// ZoneOutline is the reference rectangle drawn behind the points, in feet.
type ZoneOutline struct {
	Top        float64 `json:"top"`
	Bottom     float64 `json:"bottom"`
	HalfWidth  float64 `json:"half_width"`
	PlateWidth float64 `json:"plate_width"`
}

// ChartData is everything a renderer needs to draw one catcher-game chart.
type ChartData struct {
	Title   string        `json:"title"`
	Player  string        `json:"player_name"`
	Date    string        `json:"date"`
	Summary ChartSummary  `json:"summary"`
	Points  []ChartPoint  `json:"points"`
	Legend  []LegendEntry `json:"legend"`
	Zone    ZoneOutline   `json:"zone"`
	Message string        `json:"message,omitempty"`
}
