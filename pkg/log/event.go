package log

import "time"

// Event is one trace record. CBOR encoding uses integer keys for
// compactness. Exactly one of the payload pointers is set.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the process run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Task is the name of the task that emitted the event.
	Task string `cbor:"3,keyasint,omitempty"`

	// Button names the input channel, if the event concerns one.
	Button string `cbor:"4,keyasint,omitempty"`

	// Category classifies the payload.
	Category Category `cbor:"5,keyasint"`

	Transition *TransitionEvent `cbor:"10,keyasint,omitempty"`
	Lifecycle  *LifecycleEvent  `cbor:"11,keyasint,omitempty"`
	Fault      *FaultEvent      `cbor:"12,keyasint,omitempty"`
}

// Category classifies the event payload.
type Category uint8

const (
	// CategoryTransition is a button state published or observed.
	CategoryTransition Category = 0
	// CategoryLifecycle is a task lifecycle change.
	CategoryLifecycle Category = 1
	// CategoryFault is a hardware or configuration fault.
	CategoryFault Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransition:
		return "TRANSITION"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// Role tells which side of a watch recorded a transition.
type Role uint8

const (
	// RolePublished means the debouncer sent the state.
	RolePublished Role = 0
	// RoleObserved means an observer received the state.
	RoleObserved Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePublished:
		return "PUBLISHED"
	case RoleObserved:
		return "OBSERVED"
	default:
		return "UNKNOWN"
	}
}

// TransitionEvent records a button state crossing a watch.
type TransitionEvent struct {
	Role Role `cbor:"1,keyasint"`

	// State is the button state name ("Pressed" or "Released").
	State string `cbor:"2,keyasint"`

	// Observer names the observer for RoleObserved events.
	Observer string `cbor:"3,keyasint,omitempty"`
}

// LifecycleEvent records a task moving between lifecycle states.
type LifecycleEvent struct {
	OldState string `cbor:"1,keyasint,omitempty"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// FaultEvent records a fault that stopped a task or the process.
type FaultEvent struct {
	// Source is the faulty facility ("input", "display", "config").
	Source string `cbor:"1,keyasint"`

	Message string `cbor:"2,keyasint"`

	// Fatal is true when the fault halted the whole process.
	Fatal bool `cbor:"3,keyasint,omitempty"`
}
