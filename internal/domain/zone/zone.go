// Package zone classifies pitches against strike-zone geometry.
//
// The true-zone test checks the ball's bounding interval against the zone on
// each axis independently. It is not an exact disc/rectangle intersection and
// is kept that way so published numbers stay comparable.
package zone

import "github.com/kickdirtbb/framing/internal/domain/model"

// Geometry constants, in feet.
const (
	PlateHalfWidth = 0.7083 // half of 17 inches
	BallRadius     = 0.1208

	HorizontalMargin = 0.3
	VerticalMargin   = 0.4
	EdgeMargin       = 0.2
)

// InStrikeZone reports whether any part of the ball crosses the zone.
func InStrikeZone(g model.Geometry) bool {
	return g.PlateX-BallRadius <= PlateHalfWidth &&
		g.PlateX+BallRadius >= -PlateHalfWidth &&
		g.PlateZ+BallRadius >= g.SzBot &&
		g.PlateZ-BallRadius <= g.SzTop
}

// InShadowZone reports whether the pitch is borderline: just outside the
// zone horizontally or vertically, or inside it but near an edge.
func InShadowZone(g model.Geometry) bool {
	return horizontalShadow(g) || verticalShadow(g) || edgeBand(g)
}

func horizontalShadow(g model.Geometry) bool {
	x, z := g.PlateX, g.PlateZ
	if z < g.SzBot-VerticalMargin || z > g.SzTop+VerticalMargin {
		return false
	}
	right := x > PlateHalfWidth && x <= PlateHalfWidth+HorizontalMargin
	left := x < -PlateHalfWidth && x >= -PlateHalfWidth-HorizontalMargin
	return right || left
}

func verticalShadow(g model.Geometry) bool {
	x, z := g.PlateX, g.PlateZ
	if x < -PlateHalfWidth-HorizontalMargin || x > PlateHalfWidth+HorizontalMargin {
		return false
	}
	above := z > g.SzTop && z <= g.SzTop+VerticalMargin
	below := z < g.SzBot && z >= g.SzBot-VerticalMargin
	return above || below
}

func edgeBand(g model.Geometry) bool {
	x, z := g.PlateX, g.PlateZ
	inHeight := z >= g.SzBot && z <= g.SzTop
	inWidth := x >= -PlateHalfWidth && x <= PlateHalfWidth

	right := x > PlateHalfWidth-EdgeMargin && x <= PlateHalfWidth && inHeight
	left := x < -PlateHalfWidth+EdgeMargin && x >= -PlateHalfWidth && inHeight
	top := z > g.SzTop-EdgeMargin && z <= g.SzTop && inWidth
	bottom := z < g.SzBot+EdgeMargin && z >= g.SzBot && inWidth
	return right || left || top || bottom
}

// Classify returns both zone memberships for g.
func Classify(g model.Geometry) model.ZoneClassification {
	return model.ZoneClassification{
		InStrikeZone: InStrikeZone(g),
		InShadowZone: InShadowZone(g),
	}
}

// ClassifyAll classifies every pitch. The input is not modified.
func ClassifyAll(pitches []model.CalledPitch) []model.ClassifiedPitch {
	out := make([]model.ClassifiedPitch, len(pitches))
	for i, p := range pitches {
		out[i] = model.ClassifiedPitch{CalledPitch: p, ZoneClassification: Classify(p.Geometry)}
	}
	return out
}
