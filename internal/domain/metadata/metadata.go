package metadata

import "github.com/kickdirtbb/framing/internal/domain/model"

// ResolveTeam votes over the fielding, home and away team fields of every
// row, in that order. The most frequent canonical code wins and ties go to
// the code seen first.
func ResolveTeam(rows []model.CalledPitch) string {
	counts := make(map[string]int)
	var order []string

	vote := func(raw string) {
		team := NormalizeTeam(raw)
		if team == "" {
			return
		}
		if _, seen := counts[team]; !seen {
			order = append(order, team)
		}
		counts[team]++
	}

	for _, r := range rows {
		vote(r.FieldingTeam)
		vote(r.HomeTeam)
		vote(r.AwayTeam)
	}

	best, bestCount := UnknownTeam, 0
	for _, team := range order {
		if counts[team] > bestCount {
			best, bestCount = team, counts[team]
		}
	}
	return best
}

// Matchup labels the game from its first row as "AWAY vs HOME". One-sided
// labels are used when a team is missing, and "Game" when both are.
func Matchup(rows []model.CalledPitch) string {
	if len(rows) == 0 {
		return "Game"
	}
	home := NormalizeTeam(rows[0].HomeTeam)
	away := NormalizeTeam(rows[0].AwayTeam)

	switch {
	case home != "" && away != "":
		return away + " vs " + home
	case home != "":
		return "vs " + home
	case away != "":
		return away + " vs"
	default:
		return "Game"
	}
}
