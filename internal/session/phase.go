package session

// Phase is the coarse lifecycle stage of a session.
type Phase int

const (
	// PhaseNotStarted - no deck has been dealt yet
	PhaseNotStarted Phase = iota
	// PhaseInProgress - a card is waiting for a decision
	PhaseInProgress
	// PhaseComplete - deck and current card are exhausted
	PhaseComplete
	// PhaseSummary - results are being reviewed
	PhaseSummary
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseComplete:
		return "complete"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}
