package savant

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kickdirtbb/framing/internal/domain/model"
)

const bom = "\ufeff"

// Column names in the search CSV.
const (
	colGameDate     = "game_date"
	colGamePK       = "game_pk"
	colCatcher      = "fielder_2"
	colPlateX       = "plate_x"
	colPlateZ       = "plate_z"
	colSzTop        = "sz_top"
	colSzBot        = "sz_bot"
	colDescription  = "description"
	colPitchType    = "pitch_type"
	colStand        = "stand"
	colHomeTeam     = "home_team"
	colAwayTeam     = "away_team"
	colFieldingTeam = "fielding_team"
	colInningHalf   = "inning_topbot"
)

// Parse decodes a search CSV body into pitch events. Columns are matched by
// header name, so extra or reordered columns are fine. An empty body yields
// no events.
func Parse(r io.Reader) ([]model.PitchEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []model.PitchEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformed, err)
	}
	cols := indexHeader(header)
	if _, ok := cols[colDescription]; !ok {
		return nil, fmt.Errorf("%w: missing %s column", ErrMalformed, colDescription)
	}
	if _, ok := cols[colGamePK]; !ok {
		return nil, fmt.Errorf("%w: missing %s column", ErrMalformed, colGamePK)
	}

	events := []model.PitchEvent{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		events = append(events, cols.event(rec))
	}
	return events, nil
}

type columns map[string]int

func indexHeader(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		cols[strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))] = i
	}
	return cols
}

func (c columns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	v := strings.TrimSpace(rec[i])
	switch v {
	case "null", "NULL", "NA", "NaN":
		return ""
	}
	return v
}

func (c columns) float(rec []string, name string) *float64 {
	v := c.get(rec, name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// id parses an integer id. Ids sometimes arrive as floats ("660670.0").
func (c columns) id(rec []string, name string) int64 {
	v := c.get(rec, name)
	if v == "" {
		return 0
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0
	}
	return int64(f)
}

func (c columns) event(rec []string) model.PitchEvent {
	e := model.PitchEvent{
		GameDate:    c.get(rec, colGameDate),
		GamePK:      c.id(rec, colGamePK),
		CatcherID:   c.id(rec, colCatcher),
		PlateX:      c.float(rec, colPlateX),
		PlateZ:      c.float(rec, colPlateZ),
		SzTop:       c.float(rec, colSzTop),
		SzBot:       c.float(rec, colSzBot),
		Description: c.get(rec, colDescription),
		PitchType:   c.get(rec, colPitchType),
		Stand:       c.get(rec, colStand),
		HomeTeam:    c.get(rec, colHomeTeam),
		AwayTeam:    c.get(rec, colAwayTeam),
	}

	if _, ok := c[colFieldingTeam]; ok {
		e.FieldingTeam = c.get(rec, colFieldingTeam)
		return e
	}
	// The home team fields in the top half, the away team in the bottom.
	switch strings.ToLower(c.get(rec, colInningHalf)) {
	case "top":
		e.FieldingTeam = e.HomeTeam
	case "bot", "bottom":
		e.FieldingTeam = e.AwayTeam
	}
	return e
}
