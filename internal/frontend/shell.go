// Package frontend is the external shell around the simulation core: it
// composes the independently managed services, owns id allocation and the
// pause-lights-on-pause toggle, and renders snapshots. It consumes the core
// only through its public API and never touches internal locking.
package frontend

import (
	"context"
	"time"

	"github.com/pixil98/go-log"

	"github.com/pixil98/go-roadsim/internal/clock"
	"github.com/pixil98/go-roadsim/internal/lights"
	"github.com/pixil98/go-roadsim/internal/sim"
	"github.com/pixil98/go-roadsim/internal/world"
)

// Shell wires the coordinator, light service and clock together and exposes
// the control surface the frontends call into.
type Shell struct {
	World  *world.World
	Coord  *sim.Coordinator
	Lights *lights.Service
	Clock  *clock.Clock
	IDs    *world.IDAllocator

	// Autostart runs the simulation immediately instead of waiting for a
	// start command from a frontend.
	Autostart bool

	// PauseLights freezes light cycles whenever the simulation pauses.
	PauseLights bool
}

// Start brings up the services, blocks until ctx is cancelled, then tears
// them down. It implements service.Worker.
func (s *Shell) Start(ctx context.Context) error {
	logger := log.GetLogger(ctx)

	s.Clock.Start()
	s.Lights.Start()
	for _, i := range s.World.Snapshot().Intersections {
		s.Lights.StartLight(i.ID)
	}
	if s.Autostart {
		s.Coord.Start()
	}

	ni, nc := s.World.Counts()
	logger.Infof("shell up: %d intersections, %d cars", ni, nc)

	<-ctx.Done()

	s.Coord.Stop()
	s.Lights.Stop()
	s.Clock.Stop()
	return nil
}

// StartSim starts (or restarts) the simulation.
func (s *Shell) StartSim() {
	s.Coord.Start()
	if s.PauseLights {
		s.Lights.Resume()
	}
}

// PauseSim pauses the simulation, and the lights if so configured.
func (s *Shell) PauseSim() {
	s.Coord.Pause()
	if s.PauseLights {
		s.Lights.Pause()
	}
}

// ResumeSim resumes the simulation and any paused lights.
func (s *Shell) ResumeSim() {
	s.Coord.Resume()
	if s.PauseLights {
		s.Lights.Resume()
	}
}

// StopSim stops the simulation. Lights keep cycling; they are managed
// independently.
func (s *Shell) StopSim() {
	s.Coord.Stop()
}

// TogglePause flips between Running and Paused, starting a stopped
// simulation.
func (s *Shell) TogglePause() {
	switch s.Coord.State() {
	case sim.Running:
		s.PauseSim()
	case sim.Paused:
		s.ResumeSim()
	default:
		s.StartSim()
	}
}

// AddCar validates nothing: callers pass values already checked at the input
// boundary. Returns the allocated id.
func (s *Shell) AddCar(x, speed float64) int {
	id := s.IDs.Next()
	s.World.AddCar(world.NewCar(id, x, speed))
	return id
}

// AddIntersection creates an intersection and, if the light service is
// active, starts its cycle task. Returns the allocated id.
func (s *Shell) AddIntersection(x float64, green, yellow, red time.Duration) int {
	id := s.IDs.Next()
	s.World.AddIntersection(world.NewIntersectionWithPhases(id, x, green, yellow, red))
	if s.Lights.Running() {
		s.Lights.StartLight(id)
	}
	return id
}

// RemoveCar removes a car at any time; the stepper tolerates this between
// ticks.
func (s *Shell) RemoveCar(id int) bool {
	return s.World.RemoveCar(id)
}

// RemoveIntersection cancels the intersection's light task and removes it
// from the world.
func (s *Shell) RemoveIntersection(id int) bool {
	s.Lights.StopLight(id)
	return s.World.RemoveIntersection(id)
}
