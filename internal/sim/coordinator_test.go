package sim

import (
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-roadsim/internal/world"
)

func newTestCoordinator(t *testing.T, w *world.World) *Coordinator {
	t.Helper()
	c := NewCoordinator(w, WithTickInterval(10*time.Millisecond))
	t.Cleanup(c.Stop)
	return c
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestCoordinatorLifecycle(t *testing.T) {
	c := newTestCoordinator(t, world.New())

	testutil.AssertEqual(t, "initial state", c.State(), Stopped)

	// Double calls in every state are no-ops, not errors.
	c.Pause()
	c.Resume()
	c.Stop()
	testutil.AssertEqual(t, "still stopped", c.State(), Stopped)

	c.Start()
	c.Start()
	testutil.AssertEqual(t, "running", c.State(), Running)

	c.Pause()
	c.Pause()
	testutil.AssertEqual(t, "paused", c.State(), Paused)

	c.Resume()
	testutil.AssertEqual(t, "resumed", c.State(), Running)

	c.Stop()
	c.Stop()
	testutil.AssertEqual(t, "stopped", c.State(), Stopped)
}

func TestCoordinatorTicksAdvanceCars(t *testing.T) {
	w := world.New()
	w.AddCar(world.NewCar(1, 0, 10))
	c := newTestCoordinator(t, w)

	c.Start()
	if !waitFor(t, time.Second, func() bool { return c.Ticks() >= 3 }) {
		t.Fatal("coordinator never ticked")
	}

	if x := c.Snapshot().Cars[0].X; x <= 0 {
		t.Errorf("car did not move: x=%v", x)
	}
}

func TestCoordinatorPauseFreezesWorld(t *testing.T) {
	w := world.New()
	w.AddCar(world.NewCar(1, 0, 10))
	w.AddIntersection(world.NewIntersection(1, 500))
	c := newTestCoordinator(t, w)

	c.Start()
	waitFor(t, time.Second, func() bool { return c.Ticks() >= 2 })
	c.Pause()

	before := c.Snapshot()
	ticks := c.Ticks()
	time.Sleep(100 * time.Millisecond)
	after := c.Snapshot()

	testutil.AssertEqual(t, "ticks while paused", c.Ticks(), ticks)
	testutil.AssertEqual(t, "position while paused", after.Cars[0].X, before.Cars[0].X)
}

func TestCoordinatorResumeExcludesPausedTime(t *testing.T) {
	w := world.New()
	w.AddCar(world.NewCar(1, 0, 100))
	c := newTestCoordinator(t, w)

	c.Start()
	waitFor(t, time.Second, func() bool { return c.Ticks() >= 2 })
	c.Pause()
	paused := c.Snapshot().Cars[0].X

	// If the paused interval leaked into dt, the first tick after resume
	// would jump by ~50m at 100 m/s.
	time.Sleep(500 * time.Millisecond)
	c.Resume()
	waitFor(t, time.Second, func() bool { return c.Snapshot().Cars[0].X > paused })

	time.Sleep(50 * time.Millisecond)
	moved := c.Snapshot().Cars[0].X - paused
	if moved > 25 {
		t.Errorf("paused interval leaked into delta time: moved %.1fm", moved)
	}
}

func TestCoordinatorStartResetsTickCounter(t *testing.T) {
	c := newTestCoordinator(t, world.New())

	c.Start()
	waitFor(t, time.Second, func() bool { return c.Ticks() >= 5 })
	c.Stop()

	c.Start()
	if ticks := c.Ticks(); ticks >= 5 {
		t.Errorf("tick counter not reset on start: %d", ticks)
	}
}

func TestCoordinatorStartFromPausedResumes(t *testing.T) {
	c := newTestCoordinator(t, world.New())

	c.Start()
	c.Pause()
	c.Start()
	testutil.AssertEqual(t, "running", c.State(), Running)
}
