package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanicsOnZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
	assert.Panics(t, func() { New[int](-1) })
}

func TestReceiverCapacity(t *testing.T) {
	w := New[string](2)

	r1, ok := w.Receiver()
	require.True(t, ok)
	r2, ok := w.Receiver()
	require.True(t, ok)

	r3, ok := w.Receiver()
	assert.False(t, ok, "third receiver should be rejected")
	assert.Nil(t, r3)
	assert.Equal(t, 2, w.Receivers())
	assert.Equal(t, 2, w.Capacity())

	// Rejection must not disturb the registered receivers.
	w.Sender().Send("a")

	v, ok := r1.TryChanged()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = r2.TryChanged()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	assert.NotEqual(t, r1.Slot(), r2.Slot())
}

func TestCoalescingFavorsLatest(t *testing.T) {
	w := New[int](1)
	r, ok := w.Receiver()
	require.True(t, ok)

	w.Sender().Send(1)
	w.Sender().Send(2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := r.Changed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, ok = r.TryChanged()
	assert.False(t, ok, "coalesced value must be delivered once")
}

func TestIndependentReceivers(t *testing.T) {
	w := New[string](2)
	a, _ := w.Receiver()
	b, _ := w.Receiver()
	s := w.Sender()

	var seenA, seenB []string

	s.Send("pressed")
	if v, ok := a.TryChanged(); ok {
		seenA = append(seenA, v)
	}
	s.Send("released")
	if v, ok := a.TryChanged(); ok {
		seenA = append(seenA, v)
	}
	if v, ok := b.TryChanged(); ok {
		seenB = append(seenB, v)
	}

	assert.Equal(t, []string{"pressed", "released"}, seenA)
	assert.Equal(t, []string{"released"}, seenB)
}

func TestChangedWaitsForSend(t *testing.T) {
	w := New[int](1)
	r, _ := w.Receiver()

	got := make(chan int, 1)
	go func() {
		v, err := r.Changed(context.Background())
		if err == nil {
			got <- v
		}
	}()

	select {
	case v := <-got:
		t.Fatalf("Changed returned %d before any send", v)
	case <-time.After(20 * time.Millisecond):
	}

	w.Sender().Send(42)

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("Changed did not wake after send")
	}
}

func TestChangedCancelled(t *testing.T) {
	w := New[int](1)
	r, _ := w.Receiver()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Changed(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChangedAnd(t *testing.T) {
	w := New[int](1)
	r, _ := w.Receiver()
	s := w.Sender()

	s.Send(1)

	done := make(chan int, 1)
	go func() {
		v, err := r.ChangedAnd(context.Background(), func(v int) bool { return v%2 == 0 })
		if err == nil {
			done <- v
		}
	}()

	s.Send(3)
	s.Send(4)

	select {
	case v := <-done:
		assert.Equal(t, 4, v)
	case <-time.After(time.Second):
		t.Fatal("ChangedAnd did not return")
	}
}

func TestLateReceiverSeesCurrentValue(t *testing.T) {
	w := NewWithValue(2, "initial")

	r, ok := w.Receiver()
	require.True(t, ok)
	assert.True(t, r.Pending())

	v, ok := r.TryChanged()
	require.True(t, ok)
	assert.Equal(t, "initial", v)
	assert.False(t, r.Pending())
}

func TestPeekAndContains(t *testing.T) {
	w := New[int](1)

	_, ok := w.Peek()
	assert.False(t, ok)
	assert.False(t, w.Contains())

	w.Sender().Send(7)

	v, ok := w.Peek()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.True(t, w.Contains())
}

func TestGetMarksSeen(t *testing.T) {
	w := New[int](1)
	r, _ := w.Receiver()

	_, ok := r.Get()
	assert.False(t, ok)

	w.Sender().Send(5)
	v, ok := r.Get()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = r.TryChanged()
	assert.False(t, ok)
}

func TestSendIfModified(t *testing.T) {
	w := New[int](1)
	r, _ := w.Receiver()
	s := w.Sender()

	sent := s.SendIfModified(func(cur int, ok bool) (int, bool) {
		assert.False(t, ok)
		return 1, true
	})
	assert.True(t, sent)

	v, _ := r.TryChanged()
	assert.Equal(t, 1, v)

	sent = s.SendIfModified(func(cur int, ok bool) (int, bool) {
		return cur, false
	})
	assert.False(t, sent)
	assert.False(t, r.Pending())
}

func TestConcurrentReceivers(t *testing.T) {
	const receivers = 4
	w := New[int](receivers)
	s := w.Sender()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < receivers; i++ {
		r, ok := w.Receiver()
		require.True(t, ok)
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0
			for last != 100 {
				v, err := r.Changed(ctx)
				if err != nil {
					t.Errorf("Changed: %v", err)
					return
				}
				if v <= last {
					t.Errorf("value went backwards: %d after %d", v, last)
					return
				}
				last = v
			}
		}()
	}

	for i := 1; i <= 100; i++ {
		s.Send(i)
	}
	wg.Wait()
}
