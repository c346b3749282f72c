package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pieterm/buttonwatch/pkg/log"
)

type traceRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *traceRecorder) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *traceRecorder) faults() []log.FaultEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []log.FaultEvent
	for _, e := range r.events {
		if e.Fault != nil {
			out = append(out, *e.Fault)
		}
	}
	return out
}

// blockUntilCancelled is a task that runs until its context ends.
func blockUntilCancelled(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func waitState(t *testing.T, s *Supervisor, name string, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		st, ok := s.Status(name)
		return ok && st.State == want
	}, time.Second, time.Millisecond, "task %s never reached %s", name, want)
}

func TestSpawnRejectsDuplicatesAndEmptyNames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSupervisor(ctx, Config{})

	require.NoError(t, s.Spawn("observer-a", blockUntilCancelled))
	assert.ErrorIs(t, s.Spawn("observer-a", blockUntilCancelled), ErrDuplicateTask)
	assert.ErrorIs(t, s.Spawn("", blockUntilCancelled), ErrEmptyTaskName)

	cancel()
	assert.NoError(t, s.Wait())
}

func TestCancelledTasksExitCleanly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	trace := &traceRecorder{}
	s := NewSupervisor(ctx, Config{Trace: trace})

	require.NoError(t, s.Spawn("button1", blockUntilCancelled))
	require.NoError(t, s.Spawn("render", blockUntilCancelled))
	waitState(t, s, "button1", StateRunning)
	waitState(t, s, "render", StateRunning)

	cancel()
	require.NoError(t, s.Wait())

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "button1", snap[0].Name)
	assert.Equal(t, "render", snap[1].Name)
	for _, st := range snap {
		assert.Equal(t, StateExited, st.State, st.Name)
		assert.NoError(t, st.Err)
	}
	assert.Empty(t, trace.faults())
}

func TestDegradedPolicyKeepsOthersRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trace := &traceRecorder{}
	inputFault := errors.New("input fault")
	s := NewSupervisor(ctx, Config{
		Policy: FaultPolicyDegraded,
		Trace:  trace,
		FaultSource: func(err error) string {
			if errors.Is(err, inputFault) {
				return "input"
			}
			return ""
		},
	})

	require.NoError(t, s.Spawn("button1", func(context.Context) error {
		return inputFault
	}))
	require.NoError(t, s.Spawn("button2", blockUntilCancelled))

	waitState(t, s, "button1", StateFaulted)
	waitState(t, s, "button2", StateRunning)
	assert.NoError(t, s.Context().Err(), "degraded policy must not cancel the others")
	assert.Equal(t, []string{"button1"}, s.Faulted())

	st, _ := s.Status("button1")
	assert.ErrorIs(t, st.Err, inputFault)

	faults := trace.faults()
	require.Len(t, faults, 1)
	assert.Equal(t, "input", faults[0].Source)
	assert.False(t, faults[0].Fatal)

	cancel()
	assert.NoError(t, s.Wait())
}

func TestHaltPolicyStopsEverything(t *testing.T) {
	trace := &traceRecorder{}
	displayFault := errors.New("display fault")
	s := NewSupervisor(context.Background(), Config{Policy: FaultPolicyHalt, Trace: trace})
	assert.Equal(t, FaultPolicyHalt, s.Policy())

	release := make(chan struct{})
	require.NoError(t, s.Spawn("observer-a", blockUntilCancelled))
	require.NoError(t, s.Spawn("render", func(context.Context) error {
		<-release
		return displayFault
	}))
	waitState(t, s, "observer-a", StateRunning)
	close(release)

	err := s.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, displayFault)
	assert.Contains(t, err.Error(), "render")

	st, _ := s.Status("observer-a")
	assert.Equal(t, StateExited, st.State)

	faults := trace.faults()
	require.Len(t, faults, 1)
	assert.Equal(t, "task", faults[0].Source)
	assert.True(t, faults[0].Fatal)
}

func TestTaskReturningNilIsExited(t *testing.T) {
	s := NewSupervisor(context.Background(), Config{})
	require.NoError(t, s.Spawn("oneshot", func(context.Context) error { return nil }))
	require.NoError(t, s.Wait())

	st, ok := s.Status("oneshot")
	require.True(t, ok)
	assert.Equal(t, StateExited, st.State)

	_, ok = s.Status("missing")
	assert.False(t, ok)
}

func TestLifecycleTrace(t *testing.T) {
	trace := &traceRecorder{}
	s := NewSupervisor(context.Background(), Config{Trace: trace})
	require.NoError(t, s.Spawn("oneshot", func(context.Context) error { return nil }))
	require.NoError(t, s.Wait())

	trace.mu.Lock()
	defer trace.mu.Unlock()
	require.Len(t, trace.events, 2)
	assert.Equal(t, "PENDING", trace.events[0].Lifecycle.OldState)
	assert.Equal(t, "RUNNING", trace.events[0].Lifecycle.NewState)
	assert.Equal(t, "RUNNING", trace.events[1].Lifecycle.OldState)
	assert.Equal(t, "EXITED", trace.events[1].Lifecycle.NewState)
	assert.Equal(t, "oneshot", trace.events[1].Task)
}
