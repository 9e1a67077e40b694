package oracle

import (
	"log/slog"
	"sync"
	"time"
)

// Clock abstracts time for the limiter so tests can drive it without
// sleeping.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// WindowLimiter enforces at most budget calls per rolling window. Acquire
// blocks until the window resets when the budget is exhausted. Safe for
// concurrent callers even though the batch driver is single-threaded.
type WindowLimiter struct {
	mu     sync.Mutex
	budget int
	window time.Duration
	calls  int
	start  time.Time
	clk    Clock
	log    *slog.Logger
}

func NewWindowLimiter(budget int, window time.Duration, log *slog.Logger) *WindowLimiter {
	return &WindowLimiter{
		budget: budget,
		window: window,
		clk:    realClock{},
		log:    log,
	}
}

// Acquire reserves one call slot, sleeping out the remainder of the
// window if the budget is spent. Rate exhaustion is a scheduled wait, not
// an error.
func (l *WindowLimiter) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clk.Now()
	if l.start.IsZero() || now.Sub(l.start) >= l.window {
		l.calls = 0
		l.start = now
	}
	if l.calls >= l.budget {
		wait := l.window - now.Sub(l.start) + 100*time.Millisecond
		l.log.Info("oracle rate limit reached, waiting", "wait", wait.Round(100*time.Millisecond))
		l.clk.Sleep(wait)
		l.calls = 0
		l.start = l.clk.Now()
	}
	l.calls++
}
