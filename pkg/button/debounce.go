package button

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pieterm/buttonwatch/pkg/log"
	"github.com/pieterm/buttonwatch/pkg/watch"
)

// DefaultDebounce is the quiet period after each accepted edge.
const DefaultDebounce = 5 * time.Millisecond

// ErrInputFault wraps errors from the raw input facility.
var ErrInputFault = errors.New("input fault")

// Input is the raw, edge-triggered input facility of one physical button.
// Both waits block until the edge happens after the call.
type Input interface {
	WaitForFallingEdge(ctx context.Context) error
	WaitForRisingEdge(ctx context.Context) error
}

// Phase is the debouncer's state.
type Phase uint8

const (
	// PhaseIdleReleased waits for a falling edge.
	PhaseIdleReleased Phase = iota
	// PhaseIdlePressed waits for a rising edge.
	PhaseIdlePressed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdleReleased:
		return "IDLE_RELEASED"
	case PhaseIdlePressed:
		return "IDLE_PRESSED"
	default:
		return "UNKNOWN"
	}
}

// DebouncerConfig configures a Debouncer.
type DebouncerConfig struct {
	// Button names the input channel in logs and trace events.
	Button string

	// Interval is the quiet period after each accepted edge.
	// Zero means DefaultDebounce.
	Interval time.Duration

	// Clock provides the quiet-period delay. Nil means the real clock.
	Clock clockwork.Clock

	// Logger is the optional operational logger.
	Logger *slog.Logger

	// Trace receives a transition event per publish. Nil disables it.
	Trace log.Logger
}

// Debouncer converts edges on one Input into Pressed/Released publishes.
type Debouncer struct {
	input  Input
	sender *watch.Sender[State]
	config DebouncerConfig

	mu    sync.Mutex
	phase Phase
}

// NewDebouncer creates a debouncer publishing into sender. The debouncer
// must be the sender's only user.
func NewDebouncer(input Input, sender *watch.Sender[State], config DebouncerConfig) *Debouncer {
	if config.Interval <= 0 {
		config.Interval = DefaultDebounce
	}
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	config.Trace = log.OrNoop(config.Trace)

	return &Debouncer{
		input:  input,
		sender: sender,
		config: config,
		phase:  PhaseIdleReleased,
	}
}

// Phase returns the current state of the machine.
func (d *Debouncer) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Interval returns the configured quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.config.Interval
}

// Run drives the state machine until ctx is cancelled or the input fails.
func (d *Debouncer) Run(ctx context.Context) error {
	d.debugLog("debouncer started", "interval", d.config.Interval)

	for {
		var (
			err  error
			next State
		)
		switch d.Phase() {
		case PhaseIdleReleased:
			err = d.input.WaitForFallingEdge(ctx)
			next = Pressed
		case PhaseIdlePressed:
			err = d.input.WaitForRisingEdge(ctx)
			next = Released
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%s: %w: %w", d.config.Button, ErrInputFault, err)
		}

		d.accept(next)

		if err := d.quiet(ctx); err != nil {
			return err
		}

		d.mu.Lock()
		if next == Pressed {
			d.phase = PhaseIdlePressed
		} else {
			d.phase = PhaseIdleReleased
		}
		d.mu.Unlock()
	}
}

// accept publishes an accepted edge.
func (d *Debouncer) accept(state State) {
	d.sender.Send(state)
	d.debugLog("edge accepted", "state", state)
	d.config.Trace.Log(log.Event{
		Task:     d.config.Button,
		Button:   d.config.Button,
		Category: log.CategoryTransition,
		Transition: &log.TransitionEvent{
			Role:  log.RolePublished,
			State: state.String(),
		},
	})
}

// quiet suspends for the debounce interval.
func (d *Debouncer) quiet(ctx context.Context) error {
	select {
	case <-d.config.Clock.After(d.config.Interval):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Debouncer) debugLog(msg string, args ...any) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, append([]any{"button", d.config.Button}, args...)...)
	}
}
