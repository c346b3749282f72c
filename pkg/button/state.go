package button

// State is the logical state of a button.
type State uint8

const (
	// Released is the zero value; buttons are assumed open at boot.
	Released State = iota
	// Pressed means the contact is closed.
	Pressed
)

// String returns "Pressed" or "Released".
func (s State) String() string {
	switch s {
	case Released:
		return "Released"
	case Pressed:
		return "Pressed"
	default:
		return "Unknown"
	}
}

// Opposite returns the other state.
func (s State) Opposite() State {
	switch s {
	case Pressed:
		return Released
	default:
		return Pressed
	}
}
