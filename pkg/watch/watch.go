package watch

import (
	"context"
	"sync"
)

// Watch is a latest-value broadcast with a fixed receiver capacity.
type Watch[T any] struct {
	mu sync.Mutex

	// value is the current published value; valid once version > 0.
	value T

	// version increments on every send. Zero means nothing was sent yet.
	version uint64

	// changed is closed and replaced on every send to wake waiters.
	changed chan struct{}

	// slots holds the registered receivers; a nil slot is free.
	slots []*Receiver[T]

	sender *Sender[T]
}

// New creates a Watch that accepts up to capacity receivers.
// It panics if capacity is not positive.
func New[T any](capacity int) *Watch[T] {
	if capacity <= 0 {
		panic("watch: capacity must be positive")
	}
	w := &Watch[T]{
		changed: make(chan struct{}),
		slots:   make([]*Receiver[T], capacity),
	}
	w.sender = &Sender[T]{w: w}
	return w
}

// NewWithValue creates a Watch that already holds an initial value.
// Receivers registered afterwards observe it as an unseen change.
func NewWithValue[T any](capacity int, initial T) *Watch[T] {
	w := New[T](capacity)
	w.sender.Send(initial)
	return w
}

// Sender returns the producer handle. There is only one Sender per Watch.
func (w *Watch[T]) Sender() *Sender[T] {
	return w.sender
}

// Receiver registers a new receiver. It returns false when every slot is
// taken.
func (w *Watch[T]) Receiver() (*Receiver[T], bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, slot := range w.slots {
		if slot == nil {
			r := &Receiver[T]{w: w, slot: i}
			w.slots[i] = r
			return r, true
		}
	}
	return nil, false
}

// Capacity returns the maximum number of receivers.
func (w *Watch[T]) Capacity() int {
	return len(w.slots)
}

// Receivers returns the number of registered receivers.
func (w *Watch[T]) Receivers() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := 0
	for _, slot := range w.slots {
		if slot != nil {
			n++
		}
	}
	return n
}

// Peek returns the current value without marking it seen for anyone.
// The boolean is false if no value has been sent yet.
func (w *Watch[T]) Peek() (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value, w.version > 0
}

// Contains reports whether a value has been sent.
func (w *Watch[T]) Contains() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.version > 0
}

// send stores v and wakes every waiter. Callers hold w.mu.
func (w *Watch[T]) send(v T) {
	w.value = v
	w.version++
	close(w.changed)
	w.changed = make(chan struct{})
}

// Sender publishes into a Watch.
type Sender[T any] struct {
	w *Watch[T]
}

// Send overwrites the current value and marks it unseen for every receiver.
// Send does not block.
func (s *Sender[T]) Send(v T) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.send(v)
}

// SendIfModified calls fn with the current value and publishes the value fn
// returns only if fn reports a modification. ok is false if nothing was sent
// before. It returns whether a value was published.
func (s *Sender[T]) SendIfModified(fn func(current T, ok bool) (T, bool)) bool {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	next, modified := fn(s.w.value, s.w.version > 0)
	if !modified {
		return false
	}
	s.w.send(next)
	return true
}

// Receiver is a subscriber cursor. It tracks which version of the value
// its owner has already observed.
type Receiver[T any] struct {
	w    *Watch[T]
	slot int

	// seen is the version last returned to the owner. Guarded by w.mu.
	seen uint64
}

// Changed waits until the value changes since this receiver last observed
// it, then returns the current value and marks it seen.
func (r *Receiver[T]) Changed(ctx context.Context) (T, error) {
	return r.ChangedAnd(ctx, nil)
}

// ChangedAnd waits until the value changes to one for which pred returns
// true. Changed values rejected by pred are marked seen and skipped. A nil
// pred accepts every value.
func (r *Receiver[T]) ChangedAnd(ctx context.Context, pred func(T) bool) (T, error) {
	for {
		r.w.mu.Lock()
		if r.w.version != r.seen {
			v := r.w.value
			r.seen = r.w.version
			if pred == nil || pred(v) {
				r.w.mu.Unlock()
				return v, nil
			}
		}
		changed := r.w.changed
		r.w.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// TryChanged returns the current value if it changed since last observed.
// It never waits.
func (r *Receiver[T]) TryChanged() (T, bool) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()

	if r.w.version == r.seen {
		var zero T
		return zero, false
	}
	r.seen = r.w.version
	return r.w.value, true
}

// Get returns the current value and marks it seen, whether or not it
// changed. The boolean is false if nothing was sent yet.
func (r *Receiver[T]) Get() (T, bool) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()

	r.seen = r.w.version
	return r.w.value, r.w.version > 0
}

// Pending reports whether an unseen value is available.
func (r *Receiver[T]) Pending() bool {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	return r.w.version != r.seen
}

// Slot returns the receiver's slot index within its Watch.
func (r *Receiver[T]) Slot() int {
	return r.slot
}
