package domain

import "sort"

// Team represents one team in a game. Teams are created at game start
// and never removed; only scoring transitions change the score.
type Team struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Leaderboard returns the teams sorted by score descending. The sort
// is stable: teams with equal scores keep their rotation order.
func Leaderboard(teams []Team) []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
