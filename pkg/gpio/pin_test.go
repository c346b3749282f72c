package gpio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPinStartsReleased(t *testing.T) {
	p := NewPin("GPIO35")
	assert.Equal(t, High, p.Level())
	assert.Equal(t, "GPIO35", p.Name())
	assert.Zero(t, p.Edges())
}

func TestFallingEdgeWakesWaiter(t *testing.T) {
	ctx := testContext(t)
	p := NewPin("GPIO0")

	done := make(chan error, 1)
	go func() { done <- p.WaitForFallingEdge(ctx) }()

	require.NoError(t, p.BlockUntilWaiting(ctx, 1))
	p.Press()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("falling edge did not wake waiter")
	}
	assert.Equal(t, Low, p.Level())
	assert.Zero(t, p.Waiting())
}

func TestEdgeOnlyWakesMatchingWaiter(t *testing.T) {
	ctx := testContext(t)
	p := NewPin("GPIO0")

	rising := make(chan error, 1)
	go func() { rising <- p.WaitForRisingEdge(ctx) }()
	require.NoError(t, p.BlockUntilWaiting(ctx, 1))

	p.Press()

	select {
	case <-rising:
		t.Fatal("rising waiter woke on a falling edge")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, 1, p.Waiting())

	p.Release()
	select {
	case err := <-rising:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("rising edge did not wake waiter")
	}
}

func TestEdgesWithoutWaitersAreLost(t *testing.T) {
	ctx := testContext(t)
	p := NewPin("GPIO0")

	p.Press()
	p.Release()
	assert.Equal(t, 2, p.Edges())

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := p.WaitForFallingEdge(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, p.Waiting(), "cancelled waiter must be removed")
}

func TestSetSameLevelIsNotAnEdge(t *testing.T) {
	p := NewPin("GPIO0")
	p.Set(High)
	assert.Zero(t, p.Edges())
}

func TestBounceRestoresLevel(t *testing.T) {
	p := NewPin("GPIO0")
	p.Press()
	p.Bounce(3)
	assert.Equal(t, Low, p.Level())
	assert.Equal(t, 7, p.Edges())
}

func TestFailWakesWaitersAndPersists(t *testing.T) {
	ctx := testContext(t)
	p := NewPin("GPIO35")
	cause := errors.New("gpio interrupt controller unavailable")

	done := make(chan error, 1)
	go func() { done <- p.WaitForRisingEdge(ctx) }()
	require.NoError(t, p.BlockUntilWaiting(ctx, 1))

	p.Fail(cause)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrPinFault)
		assert.ErrorIs(t, err, cause)
	case <-ctx.Done():
		t.Fatal("fault did not wake waiter")
	}

	err := p.WaitForFallingEdge(ctx)
	assert.ErrorIs(t, err, ErrPinFault)
}

func TestLevelAndEdgeStrings(t *testing.T) {
	assert.Equal(t, "LOW", Low.String())
	assert.Equal(t, "HIGH", High.String())
	assert.Equal(t, "UNKNOWN", Level(9).String())
	assert.Equal(t, "FALLING", Falling.String())
	assert.Equal(t, "RISING", Rising.String())
	assert.Equal(t, "UNKNOWN", Edge(9).String())
}
