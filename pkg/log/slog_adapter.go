package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single "trace" record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("category", event.Category.String()),
	}
	if event.Task != "" {
		attrs = append(attrs, slog.String("task", event.Task))
	}
	if event.Button != "" {
		attrs = append(attrs, slog.String("button", event.Button))
	}

	switch {
	case event.Transition != nil:
		attrs = append(attrs,
			slog.String("role", event.Transition.Role.String()),
			slog.String("state", event.Transition.State),
		)
		if event.Transition.Observer != "" {
			attrs = append(attrs, slog.String("observer", event.Transition.Observer))
		}
	case event.Lifecycle != nil:
		attrs = append(attrs,
			slog.String("old_state", event.Lifecycle.OldState),
			slog.String("new_state", event.Lifecycle.NewState),
		)
		if event.Lifecycle.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Lifecycle.Reason))
		}
	case event.Fault != nil:
		attrs = append(attrs,
			slog.String("source", event.Fault.Source),
			slog.String("fault", event.Fault.Message),
			slog.Bool("fatal", event.Fault.Fatal),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
