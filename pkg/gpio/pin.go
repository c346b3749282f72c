package gpio

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPinFault is returned by edge waits after Fail was called.
var ErrPinFault = errors.New("pin fault")

// Level is a digital logic level.
type Level uint8

const (
	// Low is logic 0 (button pressed).
	Low Level = iota
	// High is logic 1 (button released, pulled up).
	High
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Edge is a level transition.
type Edge uint8

const (
	// Falling is a High to Low transition.
	Falling Edge = iota
	// Rising is a Low to High transition.
	Rising
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case Falling:
		return "FALLING"
	case Rising:
		return "RISING"
	default:
		return "UNKNOWN"
	}
}

type waiter struct {
	edge Edge
	done chan error
}

// Pin is a simulated input pin. It is safe for concurrent use.
type Pin struct {
	mu sync.Mutex

	name  string
	level Level
	fault error

	waiters []*waiter

	// waitersChanged is closed and replaced whenever waiters changes.
	waitersChanged chan struct{}

	edges int
}

// NewPin creates a released (High) pin.
func NewPin(name string) *Pin {
	return &Pin{
		name:           name,
		level:          High,
		waitersChanged: make(chan struct{}),
	}
}

// Name returns the pin label.
func (p *Pin) Name() string {
	return p.name
}

// Level returns the current level.
func (p *Pin) Level() Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Edges returns how many edges the pin has produced.
func (p *Pin) Edges() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edges
}

// Waiting returns the number of goroutines blocked in an edge wait.
func (p *Pin) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

// WaitForFallingEdge blocks until the next High to Low transition.
func (p *Pin) WaitForFallingEdge(ctx context.Context) error {
	return p.waitFor(ctx, Falling)
}

// WaitForRisingEdge blocks until the next Low to High transition.
func (p *Pin) WaitForRisingEdge(ctx context.Context) error {
	return p.waitFor(ctx, Rising)
}

func (p *Pin) waitFor(ctx context.Context, edge Edge) error {
	p.mu.Lock()
	if p.fault != nil {
		err := p.fault
		p.mu.Unlock()
		return err
	}
	w := &waiter{edge: edge, done: make(chan error, 1)}
	p.waiters = append(p.waiters, w)
	p.notifyWaitersChanged()
	p.mu.Unlock()

	select {
	case err := <-w.done:
		return err
	case <-ctx.Done():
		p.mu.Lock()
		p.removeWaiter(w)
		p.mu.Unlock()
		return ctx.Err()
	}
}

// Set drives the pin to level. A change of level is an edge and wakes the
// matching waiters; setting the current level does nothing.
func (p *Pin) Set(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if level == p.level {
		return
	}
	p.level = level
	p.edges++

	edge := Rising
	if level == Low {
		edge = Falling
	}

	kept := p.waiters[:0]
	for _, w := range p.waiters {
		if w.edge == edge {
			w.done <- nil
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) != len(p.waiters) {
		clear(p.waiters[len(kept):])
		p.waiters = kept
		p.notifyWaitersChanged()
	}
}

// Press drives the pin Low.
func (p *Pin) Press() { p.Set(Low) }

// Release drives the pin High.
func (p *Pin) Release() { p.Set(High) }

// Bounce toggles the pin 2n times, ending at the level it started from.
// It simulates contact chatter.
func (p *Pin) Bounce(n int) {
	for i := 0; i < n; i++ {
		start := p.Level()
		p.Set(1 - start)
		p.Set(start)
	}
}

// Fail puts the pin into a permanent fault. Current and future edge waits
// return an error wrapping ErrPinFault and cause.
func (p *Pin) Fail(cause error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cause == nil {
		cause = errors.New("edge notification unavailable")
	}
	p.fault = fmt.Errorf("%s: %w: %w", p.name, ErrPinFault, cause)
	for _, w := range p.waiters {
		w.done <- p.fault
	}
	clear(p.waiters)
	p.waiters = p.waiters[:0]
	p.notifyWaitersChanged()
}

// BlockUntilWaiting blocks until at least n goroutines wait for an edge.
func (p *Pin) BlockUntilWaiting(ctx context.Context, n int) error {
	for {
		p.mu.Lock()
		if len(p.waiters) >= n {
			p.mu.Unlock()
			return nil
		}
		ch := p.waitersChanged
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// removeWaiter drops w if still registered. Callers hold p.mu.
func (p *Pin) removeWaiter(w *waiter) {
	for i, x := range p.waiters {
		if x == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			p.notifyWaitersChanged()
			return
		}
	}
}

// notifyWaitersChanged wakes BlockUntilWaiting callers. Callers hold p.mu.
func (p *Pin) notifyWaitersChanged() {
	close(p.waitersChanged)
	p.waitersChanged = make(chan struct{})
}
