package chart

// Pitch-type colors. Types outside the palette are drawn white and left out
// of the legend.
var pitchColors = map[string]string{ //nolint:gochecknoglobals
	"FF": "#D62828", // four-seam
	"SI": "#F77F00",
	"FC": "#7F4F24",
	"CH": "#43AA8B",
	"FS": "#3A9D9A",
	"FO": "#4ECDC4",
	"SC": "#90BE6D",
	"CU": "#48CAE4",
	"KC": "#6930C3",
	"CS": "#3A0CA3",
	"SL": "#F9C74F",
	"ST": "#F8961E", // sweeper
	"SV": "#90A0C0", // slurve
}

// DefaultColor is used for pitch types without a palette entry.
const DefaultColor = "white"

// PitchColor returns the chart color for a pitch type.
func PitchColor(pitchType string) string {
	if c, ok := pitchColors[pitchType]; ok {
		return c
	}
	return DefaultColor
}
