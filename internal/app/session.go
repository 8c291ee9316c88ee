package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"alias/internal/domain"
	"alias/internal/metrics"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetClientID() string
	Close() error
}

// GameSession wraps one game with concurrency control, client
// management, and the 1 Hz poll loop that drives time-derived
// broadcasts. The engine itself never reads the clock: the loop
// samples time.Now once per tick and hands it to the engine's
// queries, so transitions stay deterministic and testable.
type GameSession struct {
	code          string
	operatorToken string
	createdAt     time.Time

	game *domain.Game
	mu   sync.RWMutex

	// Original configuration, kept so Reset can rebuild the game.
	teamNames []string
	roundTime time.Duration
	maxPoints int
	words     domain.WordSource

	clients   map[string]ClientConnection
	clientsMu sync.RWMutex

	logger *slog.Logger

	tickStop   chan struct{} // stops the current poll loop
	timeUpSent bool

	events chan *domain.GameEvent
	done   chan struct{}
}

// NewGameSession validates the configuration, builds the game, and
// starts the event broadcaster.
func NewGameSession(code string, teamNames []string, roundTime time.Duration, maxPoints int, words domain.WordSource, logger *slog.Logger) (*GameSession, error) {
	game, err := domain.NewGame(teamNames, roundTime, maxPoints, words)
	if err != nil {
		return nil, err
	}

	session := &GameSession{
		code:          code,
		operatorToken: uuid.New().String(),
		createdAt:     time.Now(),
		game:          game,
		teamNames:     teamNames,
		roundTime:     roundTime,
		maxPoints:     maxPoints,
		words:         words,
		clients:       make(map[string]ClientConnection),
		logger:        logger,
		events:        make(chan *domain.GameEvent, 100),
		done:          make(chan struct{}),
	}

	go session.eventLoop()

	return session, nil
}

// GetCode returns the room code
func (s *GameSession) GetCode() string {
	return s.code
}

// GetOperatorToken returns the token that authorizes transitions.
func (s *GameSession) GetOperatorToken() string {
	return s.operatorToken
}

// IsOperator reports whether the given token authorizes transitions.
func (s *GameSession) IsOperator(token string) bool {
	return token != "" && token == s.operatorToken
}

// GetCreatedAt returns when the session was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.createdAt
}

// GetPhase returns the current game phase
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase()
}

// Snapshot returns the current game view for the present instant.
func (s *GameSession) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Snapshot(time.Now())
}

// GetClientCount returns the number of connected clients
func (s *GameSession) GetClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a client connection
func (s *GameSession) RegisterClient(client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.GetClientID()] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(clientID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, clientID)
}

// StartCountdown begins the 3-2-1 countdown and starts the poll loop
// that will promote it into a round.
func (s *GameSession) StartCountdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.StartCountdown(time.Now()); err != nil {
		return err
	}

	s.timeUpSent = false
	s.queueEvent(domain.NewEvent(domain.EventCountdownStarted, s.code, s.game.Snapshot(time.Now())))

	s.tickStop = make(chan struct{})
	go s.runTicker(s.tickStop)

	return nil
}

// MarkSuccess scores the current word for the current team.
func (s *GameSession) MarkSuccess() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.MarkSuccess(); err != nil {
		return err
	}
	metrics.WordsGuessed.Inc()

	if s.game.Ended {
		s.stopTickerLocked()
		s.queueEvent(domain.NewEvent(domain.EventGameEnded, s.code, &domain.GameEndedPayload{
			Winner:      s.game.Winner,
			Leaderboard: s.game.Leaderboard(),
		}))
		return nil
	}

	s.queueEvent(domain.NewEvent(domain.EventWordGuessed, s.code, s.game.Snapshot(time.Now())))
	return nil
}

// Skip replaces the current word without scoring.
func (s *GameSession) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Skip(); err != nil {
		return err
	}
	metrics.WordsSkipped.Inc()

	s.queueEvent(domain.NewEvent(domain.EventWordSkipped, s.code, s.game.Snapshot(time.Now())))
	return nil
}

// MarkEnemyGuessed awards the expired round's word to the next team.
func (s *GameSession) MarkEnemyGuessed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.MarkEnemyGuessed(time.Now()); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventEnemyScored, s.code, s.game.Snapshot(time.Now())))
	return nil
}

// EndRound closes the round (or aborts the countdown) and rotates the
// turn to the next team.
func (s *GameSession) EndRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guessed := make([]string, len(s.game.GuessedWords))
	copy(guessed, s.game.GuessedWords)

	if err := s.game.EndRound(); err != nil {
		return err
	}
	s.stopTickerLocked()
	metrics.RoundsPlayed.Inc()

	s.queueEvent(domain.NewEvent(domain.EventRoundEnded, s.code, &domain.RoundEndedPayload{
		GuessedWords: guessed,
		NextTeam:     s.game.CurrentTeam(),
		Leaderboard:  s.game.Leaderboard(),
	}))
	return nil
}

// Reset discards the current game and rebuilds it from the original
// configuration: same teams, zero scores, idle phase.
func (s *GameSession) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := domain.NewGame(s.teamNames, s.roundTime, s.maxPoints, s.words)
	if err != nil {
		return err
	}

	s.stopTickerLocked()
	s.game = game
	s.timeUpSent = false

	s.queueEvent(domain.NewEvent(domain.EventGameReset, s.code, s.game.Snapshot(time.Now())))
	return nil
}

// runTicker is the session's poll loop: once per second it samples
// the clock and feeds it to the engine's time-derived queries.
func (s *GameSession) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-s.done:
			return
		case <-ticker.C:
			if !s.tick(time.Now()) {
				return
			}
		}
	}
}

// tick advances time-driven behavior for the given instant and
// reports whether the loop should keep running. The countdown
// reaching zero starts the round; the round clock reaching zero
// broadcasts a single time-up notice and parks the loop. The round is
// not auto-ended: the operator must record an enemy guess and end the
// round, since the enemy-guess award is only legal in that window.
func (s *GameSession) tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.game.Phase() {
	case domain.PhaseCountdown:
		remaining := s.game.CountdownRemaining(now)
		if remaining > 0 {
			s.queueEvent(domain.NewEvent(domain.EventCountdownTick, s.code, &domain.CountdownTickPayload{
				Remaining: remaining,
			}))
			return true
		}
		if err := s.game.StartRound(now); err != nil {
			s.logger.Error("failed to start round", "code", s.code, "error", err)
			return false
		}
		s.queueEvent(domain.NewEvent(domain.EventRoundStarted, s.code, s.game.Snapshot(now)))
		return true

	case domain.PhaseActiveRound:
		remaining := s.game.RemainingTime(now)
		s.queueEvent(domain.NewEvent(domain.EventRoundTick, s.code, &domain.RoundTickPayload{
			RemainingSeconds: remaining,
		}))
		if remaining == 0 {
			if !s.timeUpSent {
				s.timeUpSent = true
				s.queueEvent(domain.NewEvent(domain.EventTimeUp, s.code, s.game.Snapshot(now)))
			}
			return false
		}
		return true

	default:
		return false
	}
}

// stopTickerLocked stops the poll loop (caller must hold mu).
func (s *GameSession) stopTickerLocked() {
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to all connected clients
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for clientID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "clientID", clientID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	s.mu.Lock()
	s.stopTickerLocked()
	s.mu.Unlock()

	// Close all client connections
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
