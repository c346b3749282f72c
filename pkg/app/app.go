package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/pieterm/buttonwatch/pkg/button"
	"github.com/pieterm/buttonwatch/pkg/config"
	"github.com/pieterm/buttonwatch/pkg/display"
	"github.com/pieterm/buttonwatch/pkg/log"
	"github.com/pieterm/buttonwatch/pkg/task"
	"github.com/pieterm/buttonwatch/pkg/watch"
)

// App errors.
var (
	ErrMissingPeripheral = errors.New("missing peripheral")
	ErrAlreadyRunning    = errors.New("already running")
)

// Task names that are not button names.
const (
	TaskRender = "render"
	TaskIdle   = "idle"
)

// Board carries the initialized peripherals.
type Board struct {
	// Inputs maps pin labels to input facilities.
	Inputs map[string]button.Input

	Display display.Display
}

// Options holds the ambient dependencies of an App.
type Options struct {
	// Logger is the optional operational logger.
	Logger *slog.Logger

	// Trace receives trace events. Nil disables tracing.
	Trace log.Logger

	// Clock drives every timed delay. Nil means the real clock.
	Clock clockwork.Clock

	// Image overrides the configured image.
	Image image.Image
}

// channel is everything belonging to one button.
type channel struct {
	name      string
	pin       string
	watch     *watch.Watch[button.State]
	debouncer *button.Debouncer
	observers []*button.Observer
	refused   int
}

// App is the assembled system.
type App struct {
	config *config.Config
	logger *slog.Logger
	trace  log.Logger
	clock  clockwork.Clock

	channels []*channel
	renderer *display.Renderer

	mu         sync.Mutex
	supervisor *task.Supervisor
}

// New validates cfg, checks the board and builds every task. Observer
// registration happens here, before anything runs.
func New(cfg *config.Config, board Board, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if board.Display == nil {
		return nil, fmt.Errorf("%w: display", ErrMissingPeripheral)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	img := opts.Image
	if img == nil {
		var err error
		if cfg.Image != "" {
			img, err = display.LoadBMPFile(cfg.Image)
		} else {
			img, err = display.DefaultImage()
		}
		if err != nil {
			return nil, fmt.Errorf("load image: %w", err)
		}
	}

	a := &App{
		config: cfg,
		logger: opts.Logger,
		trace:  log.OrNoop(opts.Trace),
		clock:  opts.Clock,
	}

	for _, b := range cfg.Buttons {
		if b.Name == TaskRender || b.Name == TaskIdle {
			return nil, fmt.Errorf("%w: button name %s is reserved", config.ErrInvalidConfig, b.Name)
		}
		input, ok := board.Inputs[b.Pin]
		if !ok || input == nil {
			return nil, fmt.Errorf("%w: input %s for %s", ErrMissingPeripheral, b.Pin, b.Name)
		}
		a.channels = append(a.channels, a.newChannel(b, input))
	}

	a.renderer = display.NewRenderer(board.Display, img, display.RendererConfig{
		Period: cfg.RenderPeriod,
		Clock:  opts.Clock,
		Logger: opts.Logger,
	})
	return a, nil
}

func (a *App) newChannel(b config.Button, input button.Input) *channel {
	ch := &channel{
		name:  b.Name,
		pin:   b.Pin,
		watch: watch.New[button.State](a.config.ReceiversPerButton),
	}
	ch.debouncer = button.NewDebouncer(input, ch.watch.Sender(), button.DebouncerConfig{
		Button:   b.Name,
		Interval: a.config.Debounce,
		Clock:    a.clock,
		Logger:   a.logger,
		Trace:    a.trace,
	})

	for i := 0; i < a.config.ObserversPerButton; i++ {
		name := ObserverName(b.Name, i)
		rx, ok := ch.watch.Receiver()
		if !ok {
			ch.refused++
			if a.logger != nil {
				a.logger.Error("no extra watchers available",
					"button", b.Name,
					"observer", name,
					"capacity", ch.watch.Capacity())
			}
			a.trace.Log(log.Event{
				Task:     name,
				Button:   b.Name,
				Category: log.CategoryFault,
				Fault: &log.FaultEvent{
					Source:  "config",
					Message: "no extra watchers available",
				},
			})
			continue
		}
		ch.observers = append(ch.observers, button.NewObserver(b.Name, name, rx, a.logger, a.trace))
	}
	return ch
}

// ObserverName returns the task name of the i-th observer of a button.
func ObserverName(buttonName string, i int) string {
	return fmt.Sprintf("%s.observer%d", buttonName, i+1)
}

// Run starts every task and blocks until they have all returned. It
// returns nil after ctx is cancelled, or the first fault under the halt
// policy.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sup := task.NewSupervisor(ctx, task.Config{
		Policy:      a.config.Policy(),
		FaultSource: FaultSource,
		Logger:      a.logger,
		Trace:       a.trace,
	})

	a.mu.Lock()
	if a.supervisor != nil {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.supervisor = sup
	a.mu.Unlock()

	if err := a.spawnAll(sup); err != nil {
		cancel()
		_ = sup.Wait()
		return err
	}

	if a.logger != nil {
		a.logger.Info("system started",
			"buttons", len(a.channels),
			"policy", a.config.Policy().String())
	}

	err := sup.Wait()
	if a.logger != nil {
		a.logger.Info("system stopped", "faulted", sup.Faulted())
	}
	return err
}

func (a *App) spawnAll(sup *task.Supervisor) error {
	for _, ch := range a.channels {
		for _, o := range ch.observers {
			if err := sup.Spawn(o.Name(), o.Run); err != nil {
				return err
			}
		}
		if err := sup.Spawn(ch.name, ch.debouncer.Run); err != nil {
			return err
		}
	}
	if err := sup.Spawn(TaskRender, a.renderer.Run); err != nil {
		return err
	}
	return sup.Spawn(TaskIdle, a.idle)
}

// idle is the heartbeat loop.
func (a *App) idle(ctx context.Context) error {
	for {
		if a.logger != nil {
			a.logger.Info("main loop")
		}
		select {
		case <-a.clock.After(a.config.IdlePeriod):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// FaultSource names the facility behind a task error.
func FaultSource(err error) string {
	switch {
	case errors.Is(err, button.ErrInputFault):
		return "input"
	case errors.Is(err, display.ErrDisplayFault):
		return "display"
	default:
		return ""
	}
}

// Watch returns the watch of a button.
func (a *App) Watch(name string) (*watch.Watch[button.State], bool) {
	for _, ch := range a.channels {
		if ch.name == name {
			return ch.watch, true
		}
	}
	return nil, false
}

// Buttons returns the configured button names in order.
func (a *App) Buttons() []string {
	out := make([]string, 0, len(a.channels))
	for _, ch := range a.channels {
		out = append(out, ch.name)
	}
	return out
}

// Refused returns how many observers of a button were refused at startup.
func (a *App) Refused(name string) int {
	for _, ch := range a.channels {
		if ch.name == name {
			return ch.refused
		}
	}
	return 0
}

// Renderer returns the render task.
func (a *App) Renderer() *display.Renderer {
	return a.renderer
}

// Status returns every task's state, or nil before Run.
func (a *App) Status() []task.Status {
	a.mu.Lock()
	sup := a.supervisor
	a.mu.Unlock()

	if sup == nil {
		return nil
	}
	return sup.Snapshot()
}
