package stack

// Phase is the controller's interaction state.
//
// Settling is not a phase: the settle step runs atomically when the removal
// delay elapses and leaves the controller Idle.
type Phase int

const (
	PhaseIdle     Phase = iota // No gesture in progress
	PhaseDragging              // Live offset tracks input
	PhaseRemoving              // Swiped card is leaving; input is ignored
)

// String returns a human-readable label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseRemoving:
		return "removing"
	default:
		return "unknown"
	}
}
