package domain

import (
	"fmt"
	"strings"
	"time"
)

// WordSource supplies secret words for a round. Draws are independent
// uniform samples with replacement, so the same word may recur within
// or across rounds.
type WordSource interface {
	Next() string
}

const (
	// MinTeams and MaxTeams bound the supported team count.
	MinTeams = 2
	MaxTeams = 6

	// CountdownDuration is the fixed pre-round 3-2-1 countdown.
	CountdownDuration = 3 * time.Second
)

// Game is the single mutable aggregate for one Alias session. All
// transitions mutate the caller-owned Game in place and are
// deterministic given their inputs: time is always passed in by the
// caller and words come from the injected WordSource, so the package
// never reads a clock or global randomness.
type Game struct {
	Teams              []Team        `json:"teams"`
	CurrentTeamIndex   int           `json:"currentTeamIndex"`
	CurrentWord        string        `json:"currentWord"`
	GuessedWords       []string      `json:"guessedWords"`
	RoundTime          time.Duration `json:"roundTime"`
	RoundStartedAt     time.Time     `json:"roundStartedAt"`
	GameStarted        bool          `json:"gameStarted"`
	CountdownStarted   bool          `json:"countdownStarted"`
	CountdownStartedAt time.Time     `json:"countdownStartedAt"`
	MaxPoints          int           `json:"maxPoints"` // 0 disables the winning threshold
	Ended              bool          `json:"ended"`
	Winner             string        `json:"winner,omitempty"`

	words WordSource
}

// NewGame validates the configuration and builds a game in the idle
// phase. Team names must be non-empty and pairwise unique; no game is
// produced on failure.
func NewGame(teamNames []string, roundTime time.Duration, maxPoints int, words WordSource) (*Game, error) {
	if len(teamNames) < MinTeams {
		return nil, ErrTooFewTeams
	}
	if len(teamNames) > MaxTeams {
		return nil, ErrTooManyTeams
	}
	if words == nil {
		return nil, ErrNoWordSource
	}

	seen := make(map[string]struct{}, len(teamNames))
	teams := make([]Team, 0, len(teamNames))
	for _, name := range teamNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrEmptyTeamName
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTeamName, name)
		}
		seen[name] = struct{}{}
		teams = append(teams, Team{Name: name})
	}

	return &Game{
		Teams:        teams,
		GuessedWords: []string{},
		RoundTime:    roundTime,
		MaxPoints:    maxPoints,
		words:        words,
	}, nil
}

// Phase derives the current phase from the game flags.
func (g *Game) Phase() Phase {
	switch {
	case g.Ended:
		return PhaseEnded
	case g.GameStarted:
		return PhaseActiveRound
	case g.CountdownStarted:
		return PhaseCountdown
	default:
		return PhaseIdle
	}
}

// CurrentTeam returns the team whose turn it is.
func (g *Game) CurrentTeam() Team {
	return g.Teams[g.CurrentTeamIndex]
}

// StartCountdown begins the pre-round countdown. Permitted only from
// the idle phase.
func (g *Game) StartCountdown(now time.Time) error {
	if g.Ended {
		return ErrGameEnded
	}
	if g.GameStarted || g.CountdownStarted {
		return ErrNotIdle
	}
	g.CountdownStarted = true
	g.CountdownStartedAt = now
	return nil
}

// CountdownRemaining reports the countdown digit at the given
// instant: 3, 2, 1, then 0 once the countdown has elapsed. Returns 0
// when no countdown is running.
func (g *Game) CountdownRemaining(now time.Time) int {
	if !g.CountdownStarted {
		return 0
	}
	remaining := int(CountdownDuration.Seconds()) - int(now.Sub(g.CountdownStartedAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// IsCountdownFinished reports whether a countdown is running and has
// reached zero.
func (g *Game) IsCountdownFinished(now time.Time) bool {
	return g.CountdownStarted && g.CountdownRemaining(now) == 0
}

// StartRound begins the guessing phase for the current team. Permitted
// only once the countdown has run down to zero. Draws a fresh word and
// clears the previous round's guessed words.
func (g *Game) StartRound(now time.Time) error {
	if g.Ended {
		return ErrGameEnded
	}
	if !g.CountdownStarted || g.CountdownRemaining(now) > 0 {
		return ErrCountdownPending
	}
	g.CurrentWord = g.words.Next()
	g.GuessedWords = []string{}
	g.RoundStartedAt = now
	g.GameStarted = true
	g.CountdownStarted = false
	return nil
}

// RemainingTime returns the seconds left in the active round, clamped
// at zero. Before a round starts it returns the full round time.
func (g *Game) RemainingTime(now time.Time) int {
	total := int(g.RoundTime.Seconds())
	if !g.GameStarted {
		return total
	}
	remaining := total - int(now.Sub(g.RoundStartedAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// IsRoundFinished reports whether the active round's time has expired.
func (g *Game) IsRoundFinished(now time.Time) bool {
	return g.GameStarted && g.RemainingTime(now) == 0
}

// MarkSuccess records the current word as guessed and scores one point
// for the current team. If a winning threshold is configured and the
// new score reaches it, the game ends with the current team as winner
// and no new word is drawn; otherwise the next word replaces the
// current one and the round continues.
func (g *Game) MarkSuccess() error {
	if g.Ended {
		return ErrGameEnded
	}
	if !g.GameStarted {
		return ErrRoundNotActive
	}

	g.GuessedWords = append(g.GuessedWords, g.CurrentWord)
	g.Teams[g.CurrentTeamIndex].Score++

	if g.MaxPoints > 0 && g.Teams[g.CurrentTeamIndex].Score >= g.MaxPoints {
		g.Ended = true
		g.Winner = g.Teams[g.CurrentTeamIndex].Name
		g.GameStarted = false
		return nil
	}

	g.CurrentWord = g.words.Next()
	return nil
}

// Skip replaces the current word without scoring. Skipped words are
// not recorded as guessed.
func (g *Game) Skip() error {
	if g.Ended {
		return ErrGameEnded
	}
	if !g.GameStarted {
		return ErrRoundNotActive
	}
	g.CurrentWord = g.words.Next()
	return nil
}

// MarkEnemyGuessed awards one point to the next team in rotation.
// Permitted only after the round clock has run out but before the
// round is formally ended. The award never triggers the winning
// threshold; only MarkSuccess checks it.
func (g *Game) MarkEnemyGuessed(now time.Time) error {
	if g.Ended {
		return ErrGameEnded
	}
	if !g.GameStarted {
		return ErrRoundNotActive
	}
	if g.RemainingTime(now) > 0 {
		return ErrTimeNotExpired
	}
	next := (g.CurrentTeamIndex + 1) % len(g.Teams)
	g.Teams[next].Score++
	return nil
}

// EndRound closes the current round or aborts a running countdown and
// rotates the turn to the next team. Scores and the guessed-word
// history are left as they are; guessed words are cleared by the next
// StartRound.
func (g *Game) EndRound() error {
	if g.Ended {
		return ErrGameEnded
	}
	if !g.GameStarted && !g.CountdownStarted {
		return ErrNothingToEnd
	}
	g.CurrentTeamIndex = (g.CurrentTeamIndex + 1) % len(g.Teams)
	g.GameStarted = false
	g.CountdownStarted = false
	return nil
}

// Leaderboard returns the teams sorted by score, stable on ties.
func (g *Game) Leaderboard() []Team {
	return Leaderboard(g.Teams)
}
