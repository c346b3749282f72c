package log

import "time"

// Logger receives trace events.
// Pass NoopLogger to disable tracing.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent use
	// and must not block for long; tasks call Log on their hot path.
	Log(event Event)
}

// NoopLogger discards all events. It is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Stamper fills in the run ID and timestamp of events that lack them and
// forwards them to the next logger.
type Stamper struct {
	next  Logger
	runID string
	now   func() time.Time
}

// NewStamper creates a Stamper that tags events with runID.
func NewStamper(next Logger, runID string) *Stamper {
	return &Stamper{next: next, runID: runID, now: time.Now}
}

// RunID returns the run ID stamped on events.
func (s *Stamper) RunID() string {
	return s.runID
}

// Log stamps the event and forwards it.
func (s *Stamper) Log(event Event) {
	if event.RunID == "" {
		event.RunID = s.runID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.next.Log(event)
}

// OrNoop returns l, or NoopLogger if l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

var (
	_ Logger = NoopLogger{}
	_ Logger = (*Stamper)(nil)
)
