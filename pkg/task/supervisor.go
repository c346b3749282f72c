package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pieterm/buttonwatch/pkg/log"
)

// Supervisor errors.
var (
	ErrDuplicateTask = errors.New("duplicate task name")
	ErrEmptyTaskName = errors.New("empty task name")
)

// Func is the body of a task. It must return when ctx is cancelled.
type Func func(ctx context.Context) error

// Config configures a Supervisor.
type Config struct {
	// Policy applied when a task faults.
	Policy FaultPolicy

	// FaultSource names the faulty facility of an error for trace events
	// ("input", "display"). Nil or an empty result means "task".
	FaultSource func(err error) string

	// Logger is the optional operational logger.
	Logger *slog.Logger

	// Trace receives lifecycle and fault events. Nil disables it.
	Trace log.Logger
}

// Status is a snapshot of one task.
type Status struct {
	Name  string
	State State
	Err   error
}

type entry struct {
	name  string
	state State
	err   error
}

// Supervisor starts named tasks and tracks their lifecycle.
type Supervisor struct {
	config Config
	group  *errgroup.Group
	ctx    context.Context

	mu    sync.Mutex
	tasks map[string]*entry
	order []string
	fault error
}

// NewSupervisor creates a supervisor whose tasks run under ctx.
func NewSupervisor(ctx context.Context, config Config) *Supervisor {
	group, gctx := errgroup.WithContext(ctx)
	config.Trace = log.OrNoop(config.Trace)
	return &Supervisor{
		config: config,
		group:  group,
		ctx:    gctx,
		tasks:  make(map[string]*entry),
	}
}

// Context returns the context tasks run under. It is cancelled when the
// parent is cancelled or, under FaultPolicyHalt, when a task faults.
func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// Policy returns the configured fault policy.
func (s *Supervisor) Policy() FaultPolicy {
	return s.config.Policy
}

// Spawn registers and starts a task.
func (s *Supervisor) Spawn(name string, fn Func) error {
	if name == "" {
		return ErrEmptyTaskName
	}

	s.mu.Lock()
	if _, ok := s.tasks[name]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateTask, name)
	}
	e := &entry{name: name, state: StatePending}
	s.tasks[name] = e
	s.order = append(s.order, name)
	s.mu.Unlock()

	s.group.Go(func() error {
		s.transition(e, StateRunning, nil, "spawned")
		return s.finish(e, fn(s.ctx))
	})
	return nil
}

// finish classifies the task result and returns what the errgroup should see.
func (s *Supervisor) finish(e *entry, err error) error {
	if err == nil || (errors.Is(err, context.Canceled) && s.ctx.Err() != nil) {
		s.transition(e, StateExited, nil, "returned")
		return nil
	}

	s.transition(e, StateFaulted, err, err.Error())

	fatal := s.config.Policy == FaultPolicyHalt
	if s.config.Logger != nil {
		s.config.Logger.Error("task faulted",
			"task", e.name,
			"error", err,
			"policy", s.config.Policy.String())
	}
	s.config.Trace.Log(log.Event{
		Task:     e.name,
		Category: log.CategoryFault,
		Fault: &log.FaultEvent{
			Source:  s.faultSource(err),
			Message: err.Error(),
			Fatal:   fatal,
		},
	})

	if !fatal {
		return nil
	}

	s.mu.Lock()
	if s.fault == nil {
		s.fault = fmt.Errorf("task %s: %w", e.name, err)
	}
	fault := s.fault
	s.mu.Unlock()
	return fault
}

func (s *Supervisor) faultSource(err error) string {
	if s.config.FaultSource != nil {
		if src := s.config.FaultSource(err); src != "" {
			return src
		}
	}
	return "task"
}

func (s *Supervisor) transition(e *entry, to State, err error, reason string) {
	s.mu.Lock()
	from := e.state
	e.state = to
	e.err = err
	s.mu.Unlock()

	if s.config.Logger != nil && to != StateFaulted {
		s.config.Logger.Debug("task state",
			"task", e.name,
			"from", from.String(),
			"to", to.String())
	}
	s.config.Trace.Log(log.Event{
		Task:     e.name,
		Category: log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{
			OldState: from.String(),
			NewState: to.String(),
			Reason:   reason,
		},
	})
}

// Wait blocks until every task has returned. It returns the first fault
// under FaultPolicyHalt and nil otherwise.
func (s *Supervisor) Wait() error {
	return s.group.Wait()
}

// Status returns the state of one task.
func (s *Supervisor) Status(name string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[name]
	if !ok {
		return Status{}, false
	}
	return Status{Name: e.name, State: e.state, Err: e.err}, true
}

// Snapshot returns the state of every task in spawn order.
func (s *Supervisor) Snapshot() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Status, 0, len(s.order))
	for _, name := range s.order {
		e := s.tasks[name]
		out = append(out, Status{Name: e.name, State: e.state, Err: e.err})
	}
	return out
}

// Faulted returns the names of faulted tasks in spawn order.
func (s *Supervisor) Faulted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, name := range s.order {
		if s.tasks[name].state == StateFaulted {
			out = append(out, name)
		}
	}
	return out
}
