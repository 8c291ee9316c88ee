package domain

// Phase represents the current phase of a game. It is derived from
// the game flags; exactly one phase holds at any observation point.
type Phase string

const (
	PhaseIdle        Phase = "IDLE"         // Between rounds, waiting for the next countdown
	PhaseCountdown   Phase = "COUNTDOWN"    // 3-2-1 pre-round countdown
	PhaseActiveRound Phase = "ACTIVE_ROUND" // Current team is describing words
	PhaseEnded       Phase = "ENDED"        // A team reached the winning threshold
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}
