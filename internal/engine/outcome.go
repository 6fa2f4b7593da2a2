package engine

// Outcome reports whether the core consumed an input event.
type Outcome uint8

const (
	// NotHandled means the renderer should apply its default behavior.
	NotHandled Outcome = iota
	// Handled means the core mutated the state and the renderer must not
	// perform the default insertion.
	Handled
)

// String returns the renderer-facing name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case NotHandled:
		return "not-handled"
	default:
		return "unknown"
	}
}
