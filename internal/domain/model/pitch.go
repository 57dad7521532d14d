// Package model contains domain models passed between layers.
package model

// Call outcomes that carry an umpire ball/strike decision.
const (
	CalledStrike = "called_strike"
	Ball         = "ball"
)

// PitchEvent is one tracked pitch as received from the pitch data source.
// Geometry fields are nil when the source left them blank.
type PitchEvent struct {
	GameDate  string
	GamePK    int64
	CatcherID int64 // fielder_2; 0 when missing

	PlateX *float64 // feet, horizontal, catcher's view
	PlateZ *float64 // feet above ground
	SzTop  *float64
	SzBot  *float64

	Description string
	PitchType   string
	Stand       string // batter side, L or R

	// Display only. Inconsistently populated upstream.
	FieldingTeam string
	HomeTeam     string
	AwayTeam     string
}

// Geometry holds the plate crossing and the batter's zone bounds, in feet.
type Geometry struct {
	PlateX float64
	PlateZ float64
	SzTop  float64
	SzBot  float64
}

// CalledPitch is a PitchEvent that passed the framing filter: it has a
// binary umpire call, a catcher, and complete geometry.
type CalledPitch struct {
	GamePK    int64
	CatcherID int64
	Geometry

	Description string
	PitchType   string
	Stand       string

	FieldingTeam string
	HomeTeam     string
	AwayTeam     string
}

// IsCalledStrike reports whether the umpire called a strike.
func (p CalledPitch) IsCalledStrike() bool { return p.Description == CalledStrike }

// IsBall reports whether the umpire called a ball.
func (p CalledPitch) IsBall() bool { return p.Description == Ball }

// ZoneClassification is the geometric verdict for one pitch.
type ZoneClassification struct {
	InStrikeZone bool
	InShadowZone bool
}

// ClassifiedPitch pairs a called pitch with its zone classification.
type ClassifiedPitch struct {
	CalledPitch
	ZoneClassification
}
