package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWords hands out words in a fixed cycle and counts draws.
type fakeWords struct {
	words []string
	draws int
}

func (f *fakeWords) Next() string {
	w := f.words[f.draws%len(f.words)]
	f.draws++
	return w
}

func newTestWords() *fakeWords {
	return &fakeWords{words: []string{"apple", "banana", "cherry", "date", "elder"}}
}

func newActiveGame(t *testing.T, teamNames []string, roundTime time.Duration, maxPoints int) (*Game, *fakeWords, time.Time) {
	t.Helper()

	words := newTestWords()
	game, err := NewGame(teamNames, roundTime, maxPoints, words)
	require.NoError(t, err)

	t0 := time.Unix(1000, 0)
	require.NoError(t, game.StartCountdown(t0))
	start := t0.Add(CountdownDuration)
	require.NoError(t, game.StartRound(start))

	return game, words, start
}

func TestNewGame(t *testing.T) {
	tests := []struct {
		name      string
		teamNames []string
		wantErr   error
	}{
		{"two teams", []string{"Red", "Blue"}, nil},
		{"six teams", []string{"A", "B", "C", "D", "E", "F"}, nil},
		{"one team", []string{"Solo"}, ErrTooFewTeams},
		{"no teams", nil, ErrTooFewTeams},
		{"seven teams", []string{"A", "B", "C", "D", "E", "F", "G"}, ErrTooManyTeams},
		{"empty name", []string{"Red", ""}, ErrEmptyTeamName},
		{"whitespace name", []string{"Red", "   "}, ErrEmptyTeamName},
		{"duplicate names", []string{"Red", "Red"}, ErrDuplicateTeamName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := NewGame(tt.teamNames, 60*time.Second, 0, newTestWords())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				assert.Nil(t, game)
				return
			}

			require.NoError(t, err)
			require.Len(t, game.Teams, len(tt.teamNames))
			for i, team := range game.Teams {
				assert.Equal(t, tt.teamNames[i], team.Name)
				assert.Zero(t, team.Score)
			}
			assert.Zero(t, game.CurrentTeamIndex)
			assert.Equal(t, PhaseIdle, game.Phase())
		})
	}
}

func TestNewGameRequiresWordSource(t *testing.T) {
	_, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, nil)
	assert.ErrorIs(t, err, ErrNoWordSource)
}

func TestStartCountdown(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, newTestWords())
	require.NoError(t, err)

	t0 := time.Unix(1000, 0)
	require.NoError(t, game.StartCountdown(t0))
	assert.Equal(t, PhaseCountdown, game.Phase())
	assert.Equal(t, t0, game.CountdownStartedAt)

	// Not permitted while a countdown is already running.
	assert.ErrorIs(t, game.StartCountdown(t0), ErrNotIdle)

	// Not permitted during an active round.
	require.NoError(t, game.StartRound(t0.Add(CountdownDuration)))
	assert.ErrorIs(t, game.StartCountdown(t0), ErrNotIdle)
}

func TestCountdownRemaining(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, newTestWords())
	require.NoError(t, err)

	t0 := time.Unix(1000, 0)

	// No countdown running yet.
	assert.Zero(t, game.CountdownRemaining(t0))

	require.NoError(t, game.StartCountdown(t0))

	assert.Equal(t, 3, game.CountdownRemaining(t0))
	assert.Equal(t, 2, game.CountdownRemaining(t0.Add(1*time.Second)))
	assert.Equal(t, 1, game.CountdownRemaining(t0.Add(2*time.Second)))
	assert.Equal(t, 0, game.CountdownRemaining(t0.Add(3*time.Second)))
	// Sticks at zero.
	assert.Equal(t, 0, game.CountdownRemaining(t0.Add(10*time.Second)))

	assert.False(t, game.IsCountdownFinished(t0.Add(2*time.Second)))
	assert.True(t, game.IsCountdownFinished(t0.Add(3*time.Second)))
}

func TestStartRound(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, newTestWords())
	require.NoError(t, err)

	t0 := time.Unix(1000, 0)

	// Without a countdown.
	assert.ErrorIs(t, game.StartRound(t0), ErrCountdownPending)

	require.NoError(t, game.StartCountdown(t0))

	// Countdown still running.
	assert.ErrorIs(t, game.StartRound(t0.Add(1*time.Second)), ErrCountdownPending)

	start := t0.Add(CountdownDuration)
	require.NoError(t, game.StartRound(start))

	assert.Equal(t, PhaseActiveRound, game.Phase())
	assert.Equal(t, "apple", game.CurrentWord)
	assert.Empty(t, game.GuessedWords)
	assert.False(t, game.CountdownStarted)
	assert.Equal(t, start, game.RoundStartedAt)
}

func TestRemainingTime(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)

	assert.Equal(t, 60, game.RemainingTime(start))
	assert.Equal(t, 59, game.RemainingTime(start.Add(1*time.Second)))
	assert.Equal(t, 30, game.RemainingTime(start.Add(30*time.Second)))
	assert.Equal(t, 0, game.RemainingTime(start.Add(60*time.Second)))
	// Clamped, never negative.
	assert.Equal(t, 0, game.RemainingTime(start.Add(5*time.Minute)))

	assert.False(t, game.IsRoundFinished(start.Add(59*time.Second)))
	assert.True(t, game.IsRoundFinished(start.Add(60*time.Second)))
}

func TestRemainingTimeNonIncreasing(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"Red", "Blue"}, 45*time.Second, 0)

	prev := game.RemainingTime(start)
	for s := 1; s <= 60; s++ {
		cur := game.RemainingTime(start.Add(time.Duration(s) * time.Second))
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, 0)
		assert.LessOrEqual(t, cur, 45)
		prev = cur
	}
}

func TestRemainingTimeBeforeRoundStart(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 90*time.Second, 0, newTestWords())
	require.NoError(t, err)

	// Full round time before the first round begins.
	assert.Equal(t, 90, game.RemainingTime(time.Unix(1000, 0)))
	assert.False(t, game.IsRoundFinished(time.Unix(1000, 0)))
}

func TestMarkSuccess(t *testing.T) {
	game, _, _ := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)

	for i := 1; i <= 4; i++ {
		require.NoError(t, game.MarkSuccess())
		assert.Equal(t, i, game.Teams[0].Score)
		assert.Len(t, game.GuessedWords, i)
	}

	// Each guessed word was the word on display when success was marked.
	assert.Equal(t, []string{"apple", "banana", "cherry", "date"}, game.GuessedWords)
	assert.Equal(t, "elder", game.CurrentWord)
	assert.Zero(t, game.Teams[1].Score)
}

func TestMarkSuccessOutsideRound(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, newTestWords())
	require.NoError(t, err)

	err = game.MarkSuccess()
	assert.ErrorIs(t, err, ErrRoundNotActive)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestWinCondition(t *testing.T) {
	game, words, _ := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 3)

	require.NoError(t, game.MarkSuccess())
	require.NoError(t, game.MarkSuccess())
	assert.False(t, game.Ended)

	drawsBefore := words.draws
	require.NoError(t, game.MarkSuccess())

	assert.True(t, game.Ended)
	assert.Equal(t, "Red", game.Winner)
	assert.Equal(t, PhaseEnded, game.Phase())
	assert.False(t, game.GameStarted)
	// No replacement word is drawn on the winning guess.
	assert.Equal(t, drawsBefore, words.draws)

	// Any further transition is rejected.
	assert.ErrorIs(t, game.MarkSuccess(), ErrGameEnded)
	assert.ErrorIs(t, game.Skip(), ErrGameEnded)
	assert.ErrorIs(t, game.EndRound(), ErrGameEnded)
	assert.ErrorIs(t, game.StartCountdown(time.Now()), ErrGameEnded)
}

func TestSkip(t *testing.T) {
	game, _, _ := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)

	before := game.CurrentWord
	for i := 0; i < 3; i++ {
		require.NoError(t, game.Skip())
	}

	assert.NotEqual(t, before, game.CurrentWord)
	// Skips never touch score state or the guessed-word list.
	assert.Empty(t, game.GuessedWords)
	assert.Zero(t, game.Teams[0].Score)
	assert.Zero(t, game.Teams[1].Score)
}

func TestMarkEnemyGuessed(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)

	// Not permitted while time remains.
	err := game.MarkEnemyGuessed(start.Add(30 * time.Second))
	assert.ErrorIs(t, err, ErrTimeNotExpired)

	expired := start.Add(61 * time.Second)
	require.NoError(t, game.MarkEnemyGuessed(expired))

	assert.Zero(t, game.Teams[0].Score)
	assert.Equal(t, 1, game.Teams[1].Score)
	// Awarding the point neither ends the round nor draws a word.
	assert.Equal(t, PhaseActiveRound, game.Phase())
	assert.Equal(t, "apple", game.CurrentWord)
}

func TestMarkEnemyGuessedNeverEndsGame(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 1)

	expired := start.Add(60 * time.Second)
	require.NoError(t, game.MarkEnemyGuessed(expired))

	// Blue reached the threshold, but only MarkSuccess checks it.
	assert.Equal(t, 1, game.Teams[1].Score)
	assert.False(t, game.Ended)
	assert.Empty(t, game.Winner)
}

func TestMarkEnemyGuessedWraparound(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"A", "B", "C"}, 60*time.Second, 0)

	// Rotate to the last team, playing a full cycle between rotations.
	require.NoError(t, game.EndRound())
	t1 := start.Add(2 * time.Minute)
	require.NoError(t, game.StartCountdown(t1))
	require.NoError(t, game.StartRound(t1.Add(CountdownDuration)))
	require.NoError(t, game.EndRound())
	require.Equal(t, 2, game.CurrentTeamIndex)

	t2 := t1.Add(2 * time.Minute)
	require.NoError(t, game.StartCountdown(t2))
	roundStart := t2.Add(CountdownDuration)
	require.NoError(t, game.StartRound(roundStart))

	require.NoError(t, game.MarkEnemyGuessed(roundStart.Add(60*time.Second)))
	assert.Equal(t, 1, game.Teams[0].Score)
}

func TestEndRoundRotation(t *testing.T) {
	game, _, _ := newActiveGame(t, []string{"A", "B", "C"}, 60*time.Second, 0)

	require.NoError(t, game.EndRound())
	assert.Equal(t, 1, game.CurrentTeamIndex)
	assert.Equal(t, PhaseIdle, game.Phase())

	for _, want := range []int{2, 0, 1} {
		t0 := time.Unix(2000, 0)
		require.NoError(t, game.StartCountdown(t0))
		require.NoError(t, game.StartRound(t0.Add(CountdownDuration)))
		require.NoError(t, game.EndRound())
		assert.Equal(t, want, game.CurrentTeamIndex)
	}
}

func TestEndRoundAbortsCountdown(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, newTestWords())
	require.NoError(t, err)

	require.NoError(t, game.StartCountdown(time.Unix(1000, 0)))
	require.NoError(t, game.EndRound())

	assert.Equal(t, PhaseIdle, game.Phase())
	assert.Equal(t, 1, game.CurrentTeamIndex)
}

func TestEndRoundFromIdle(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 0, newTestWords())
	require.NoError(t, err)

	assert.ErrorIs(t, game.EndRound(), ErrNothingToEnd)
}

func TestEndRoundKeepsScores(t *testing.T) {
	game, _, _ := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)

	require.NoError(t, game.MarkSuccess())
	require.NoError(t, game.MarkSuccess())
	require.NoError(t, game.EndRound())

	assert.Equal(t, 2, game.Teams[0].Score)
	// Guessed words stay visible until the next round starts.
	assert.Len(t, game.GuessedWords, 2)

	t0 := time.Unix(3000, 0)
	require.NoError(t, game.StartCountdown(t0))
	require.NoError(t, game.StartRound(t0.Add(CountdownDuration)))
	assert.Empty(t, game.GuessedWords)
}

func TestPhaseExclusivity(t *testing.T) {
	game, err := NewGame([]string{"Red", "Blue"}, 60*time.Second, 1, newTestWords())
	require.NoError(t, err)

	phases := []Phase{game.Phase()}

	t0 := time.Unix(1000, 0)
	require.NoError(t, game.StartCountdown(t0))
	phases = append(phases, game.Phase())

	require.NoError(t, game.StartRound(t0.Add(CountdownDuration)))
	phases = append(phases, game.Phase())

	require.NoError(t, game.MarkSuccess())
	phases = append(phases, game.Phase())

	assert.Equal(t, []Phase{PhaseIdle, PhaseCountdown, PhaseActiveRound, PhaseEnded}, phases)
}

func TestSnapshotIsDetached(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)
	require.NoError(t, game.MarkSuccess())

	snap := game.Snapshot(start.Add(10 * time.Second))

	assert.Equal(t, PhaseActiveRound, snap.Phase)
	assert.Equal(t, 50, snap.RemainingSeconds)
	assert.Equal(t, 60, snap.RoundSeconds)
	assert.Equal(t, "Red", snap.CurrentTeam.Name)
	assert.Equal(t, []string{"apple"}, snap.GuessedWords)

	// Mutating the snapshot must not leak into the game.
	snap.Teams[0].Score = 99
	snap.GuessedWords[0] = "mutated"
	assert.Equal(t, 1, game.Teams[0].Score)
	assert.Equal(t, "apple", game.GuessedWords[0])
}

func TestNoPartialMutationOnFailure(t *testing.T) {
	game, _, start := newActiveGame(t, []string{"Red", "Blue"}, 60*time.Second, 0)

	before := fmt.Sprintf("%+v", *game)
	require.Error(t, game.MarkEnemyGuessed(start.Add(time.Second)))
	require.Error(t, game.StartCountdown(start))
	assert.Equal(t, before, fmt.Sprintf("%+v", *game))
}
