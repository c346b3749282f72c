package button

import (
	"context"
	"log/slog"

	"github.com/pieterm/buttonwatch/pkg/log"
	"github.com/pieterm/buttonwatch/pkg/watch"
)

// Observer logs every state change it sees on one watch.
type Observer struct {
	name   string
	button string
	rx     *watch.Receiver[State]
	logger *slog.Logger
	trace  log.Logger
}

// NewObserver creates an observer that takes ownership of rx.
// Each observer needs its own receiver; receivers are not reentrant.
func NewObserver(button, name string, rx *watch.Receiver[State], logger *slog.Logger, trace log.Logger) *Observer {
	return &Observer{
		name:   name,
		button: button,
		rx:     rx,
		logger: logger,
		trace:  log.OrNoop(trace),
	}
}

// Name returns the observer name.
func (o *Observer) Name() string {
	return o.name
}

// Run waits for changes until ctx is cancelled.
func (o *Observer) Run(ctx context.Context) error {
	for {
		state, err := o.rx.Changed(ctx)
		if err != nil {
			return err
		}
		o.react(state)
	}
}

func (o *Observer) react(state State) {
	if o.logger != nil {
		o.logger.Info("button state",
			"button", o.button,
			"observer", o.name,
			"state", state.String())
	}
	o.trace.Log(log.Event{
		Task:     o.name,
		Button:   o.button,
		Category: log.CategoryTransition,
		Transition: &log.TransitionEvent{
			Role:     log.RoleObserved,
			State:    state.String(),
			Observer: o.name,
		},
	})
}
