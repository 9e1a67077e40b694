package oracle

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWindowLimiterWithinBudget(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := &WindowLimiter{budget: 3, window: time.Minute, clk: clk, log: testLogger()}

	l.Acquire()
	l.Acquire()
	l.Acquire()

	assert.Empty(t, clk.slept)
}

func TestWindowLimiterSleepsWhenExhausted(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := &WindowLimiter{budget: 2, window: time.Minute, clk: clk, log: testLogger()}

	l.Acquire()
	clk.now = clk.now.Add(10 * time.Second)
	l.Acquire()

	// Budget spent 10s into the window: the third call waits out the
	// remaining 50s plus the safety margin.
	l.Acquire()
	require.Len(t, clk.slept, 1)
	assert.Equal(t, 50*time.Second+100*time.Millisecond, clk.slept[0])

	// The wait opened a fresh window with one call in it.
	assert.Equal(t, 1, l.calls)
}

func TestWindowLimiterResetsAfterWindow(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := &WindowLimiter{budget: 1, window: time.Minute, clk: clk, log: testLogger()}

	l.Acquire()
	clk.now = clk.now.Add(time.Minute)
	l.Acquire()

	assert.Empty(t, clk.slept)
}
