package sim

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-roadsim/internal/world"
)

const (
	// DefaultTickInterval is the stepper cadence: 20 ticks per second.
	DefaultTickInterval = 50 * time.Millisecond

	// shutdownWait bounds how long Stop waits for the tick loop to drain
	// before giving up on it.
	shutdownWait = time.Second
)

// State is the coordinator lifecycle state.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Coordinator owns the physics stepper's lifecycle and the read path into the
// world. Start spawns exactly one tick loop; Pause keeps the loop firing on
// schedule but skips mutation, so paused wall time never enters the next
// delta-time computation. All transitions are idempotent.
type Coordinator struct {
	world   *world.World
	stepper *Stepper

	mu       sync.Mutex
	interval time.Duration
	state    State
	ticks    uint64
	lastTick time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewCoordinator(w *world.World, opts ...CoordinatorOpt) *Coordinator {
	c := &Coordinator{
		world:    w,
		stepper:  NewStepper(w),
		interval: DefaultTickInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start transitions Stopped or Paused to Running. The tick counter resets and
// the delta-time baseline is re-anchored so the first tick sees a small dt.
// A no-op while already running.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		return
	}

	c.ticks = 0
	c.lastTick = time.Now()
	c.state = Running

	if c.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.done = make(chan struct{})
		go c.run(ctx, c.done)
		slog.Info("simulation started", "interval", c.interval)
	}
}

// Pause transitions Running to Paused. Subsequent ticks are skipped, not
// stopped. A no-op in any other state.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return
	}
	c.state = Paused
}

// Resume transitions Paused to Running, re-anchoring the delta-time baseline
// so the paused interval is excluded from the next tick. A no-op in any other
// state.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Paused {
		return
	}
	c.lastTick = time.Now()
	c.state = Running
}

// Stop cancels the tick loop and waits briefly for it to drain. A no-op while
// stopped. The coordinator can be restarted afterwards.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.state == Stopped {
		c.mu.Unlock()
		return
	}
	cancel, done := c.cancel, c.done
	c.state = Stopped
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	select {
	case <-done:
		slog.Info("simulation stopped")
	case <-time.After(shutdownWait):
		slog.Error("simulation tick loop did not drain, abandoning it")
	}
}

// Snapshot returns a consistent view of the world for rendering.
func (c *Coordinator) Snapshot() world.Snapshot {
	return c.world.Snapshot()
}

// Ticks returns the number of ticks executed since the last Start.
func (c *Coordinator) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ticks
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Running reports whether the coordinator is in the Running state.
func (c *Coordinator) Running() bool {
	return c.State() == Running
}

// Paused reports whether the coordinator is in the Paused state.
func (c *Coordinator) Paused() bool {
	return c.State() == Paused
}

func (c *Coordinator) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick computes elapsed time and advances the stepper once. While paused the
// loop keeps waking on schedule but mutates nothing.
func (c *Coordinator) tick() {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	now := time.Now()
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	c.ticks++
	c.mu.Unlock()

	c.stepper.Tick(dt)
}
