// Package clock provides a 1 Hz wall-clock readout for the shell. It has no
// dependency on simulation state.
package clock

import (
	"context"
	"sync"
	"time"
)

const (
	timeFormat   = "15:04:05"
	tickInterval = time.Second
	shutdownWait = time.Second
)

// Clock publishes the current wall-clock time as formatted text once per
// second. Start and Stop are idempotent.
type Clock struct {
	onTick func(string)

	mu     sync.Mutex
	now    string
	cancel context.CancelFunc
	done   chan struct{}
}

func New(opts ...Opt) *Clock {
	c := &Clock{
		now: time.Now().Format(timeFormat),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start begins updating the time every second. A no-op while running.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

// Stop halts updates, waiting briefly for the loop to exit. A no-op while
// stopped.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	select {
	case <-done:
	case <-time.After(shutdownWait):
	}
}

// Running reports whether the clock is updating.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cancel != nil
}

// Now returns the most recently published time, formatted HH:MM:SS.
func (c *Clock) Now() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.update()
		}
	}
}

func (c *Clock) update() {
	formatted := time.Now().Format(timeFormat)

	c.mu.Lock()
	c.now = formatted
	onTick := c.onTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(formatted)
	}
}
