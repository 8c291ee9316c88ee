package domain

import (
	"errors"
	"fmt"
)

// ErrGameNotFound is returned when a room code matches no session.
var ErrGameNotFound = errors.New("game not found")

// Base errors. Boundaries test against these with errors.Is; the
// variants below wrap them with detail.
var (
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrIllegalTransition    = errors.New("action not allowed in current phase")
)

// Configuration errors.
var (
	ErrTooFewTeams       = fmt.Errorf("%w: at least 2 teams required", ErrInvalidConfiguration)
	ErrTooManyTeams      = fmt.Errorf("%w: at most 6 teams supported", ErrInvalidConfiguration)
	ErrEmptyTeamName     = fmt.Errorf("%w: team name cannot be empty", ErrInvalidConfiguration)
	ErrDuplicateTeamName = fmt.Errorf("%w: team names must be unique", ErrInvalidConfiguration)
	ErrNoWordSource      = fmt.Errorf("%w: word source is required", ErrInvalidConfiguration)
)

// Transition errors.
var (
	ErrGameEnded        = fmt.Errorf("%w: game has ended", ErrIllegalTransition)
	ErrNotIdle          = fmt.Errorf("%w: a countdown or round is already running", ErrIllegalTransition)
	ErrCountdownPending = fmt.Errorf("%w: countdown has not finished", ErrIllegalTransition)
	ErrRoundNotActive   = fmt.Errorf("%w: no active round", ErrIllegalTransition)
	ErrTimeNotExpired   = fmt.Errorf("%w: round time has not expired", ErrIllegalTransition)
	ErrNothingToEnd     = fmt.Errorf("%w: no countdown or round to end", ErrIllegalTransition)
)
