// Package metadata resolves display metadata for a catcher-game: the
// catcher's team and the game matchup label.
package metadata

import "strings"

// UnknownTeam is reported when no row carries any team field.
const UnknownTeam = "UNK"

// Legacy and alternate codes seen in tracking data, keyed by the code as it
// appears upstream. Codes not listed are already canonical.
var teamAliases = map[string]string{ //nolint:gochecknoglobals
	"ANA": "LAA", // Angels
	"CHW": "CWS", // White Sox
	"KCR": "KC",  // Royals
	"NY":  "NYY", // Yankees
	"TBR": "TB",  // Rays
	"FLA": "MIA", // Marlins
	"WAS": "WSH", // Nationals
	"CHI": "CHC", // Cubs
	"AZ":  "ARI", // Diamondbacks
	"LA":  "LAD", // Dodgers
	"SDP": "SD",  // Padres
	"SFG": "SF",  // Giants
}

// NormalizeTeam trims and upper-cases code and maps known aliases to the
// canonical abbreviation. Unknown codes pass through.
func NormalizeTeam(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := teamAliases[c]; ok {
		return canonical
	}
	return c
}
