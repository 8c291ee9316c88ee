package domain

import "time"

// Snapshot is the read view handed to the rendering layer after every
// transition and on every tick. It copies all slice state so the
// caller can hold it without racing later transitions.
type Snapshot struct {
	Phase              Phase    `json:"phase"`
	Teams              []Team   `json:"teams"`
	CurrentTeamIndex   int      `json:"currentTeamIndex"`
	CurrentTeam        Team     `json:"currentTeam"`
	CurrentWord        string   `json:"currentWord"`
	GuessedWords       []string `json:"guessedWords"`
	RoundSeconds       int      `json:"roundSeconds"`
	RemainingSeconds   int      `json:"remainingSeconds"`
	CountdownRemaining int      `json:"countdownRemaining"`
	MaxPoints          int      `json:"maxPoints,omitempty"`
	Winner             string   `json:"winner,omitempty"`
	Leaderboard        []Team   `json:"leaderboard"`
}

// Snapshot builds the view for the given instant.
func (g *Game) Snapshot(now time.Time) Snapshot {
	teams := make([]Team, len(g.Teams))
	copy(teams, g.Teams)

	guessed := make([]string, len(g.GuessedWords))
	copy(guessed, g.GuessedWords)

	return Snapshot{
		Phase:              g.Phase(),
		Teams:              teams,
		CurrentTeamIndex:   g.CurrentTeamIndex,
		CurrentTeam:        g.CurrentTeam(),
		CurrentWord:        g.CurrentWord,
		GuessedWords:       guessed,
		RoundSeconds:       int(g.RoundTime.Seconds()),
		RemainingSeconds:   g.RemainingTime(now),
		CountdownRemaining: g.CountdownRemaining(now),
		MaxPoints:          g.MaxPoints,
		Winner:             g.Winner,
		Leaderboard:        g.Leaderboard(),
	}
}
