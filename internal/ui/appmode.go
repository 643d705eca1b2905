package ui

// AppMode is the screen the root model is showing.
type AppMode int

const (
	ModeStack AppMode = iota
	ModeTrace
)

func (m AppMode) String() string {
	switch m {
	case ModeStack:
		return "Stack"
	case ModeTrace:
		return "Trace"
	default:
		return "Unknown"
	}
}
