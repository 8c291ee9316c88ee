package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventCountdownStarted EventType = "COUNTDOWN_STARTED"
	EventCountdownTick    EventType = "COUNTDOWN_TICK"
	EventRoundStarted     EventType = "ROUND_STARTED"
	EventRoundTick        EventType = "ROUND_TICK"
	EventWordGuessed      EventType = "WORD_GUESSED"
	EventWordSkipped      EventType = "WORD_SKIPPED"
	EventEnemyScored      EventType = "ENEMY_SCORED"
	EventTimeUp           EventType = "TIME_UP"
	EventRoundEnded       EventType = "ROUND_ENDED"
	EventGameEnded        EventType = "GAME_ENDED"
	EventGameReset        EventType = "GAME_RESET"
)

// GameEvent represents an event that occurred in a game session.
type GameEvent struct {
	Type      EventType   `json:"type"`
	GameID    string      `json:"gameId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, gameID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// CountdownTickPayload is sent every second during the countdown.
type CountdownTickPayload struct {
	Remaining int `json:"remaining"`
}

// RoundTickPayload is sent every second while a round is active.
type RoundTickPayload struct {
	RemainingSeconds int `json:"remainingSeconds"`
}

// RoundEndedPayload is sent when a round ends and the turn rotates.
type RoundEndedPayload struct {
	GuessedWords []string `json:"guessedWords"`
	NextTeam     Team     `json:"nextTeam"`
	Leaderboard  []Team   `json:"leaderboard"`
}

// GameEndedPayload is sent when a team reaches the winning threshold.
type GameEndedPayload struct {
	Winner      string `json:"winner"`
	Leaderboard []Team `json:"leaderboard"`
}
