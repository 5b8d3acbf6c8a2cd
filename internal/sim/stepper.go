// Package sim contains the physics stepper and the simulation coordinator
// that drives it on a fixed cadence.
package sim

import "github.com/pixil98/go-roadsim/internal/world"

const (
	// StoppingMargin is how far before an intersection a car halts on red.
	StoppingMargin = 5.0
	// PassMargin is how far past an intersection a car must be to have
	// cleared it and advance to its next target.
	PassMargin = 2.0
	// RoadLength is where a car wraps back to the start of the road when no
	// intersections exist.
	RoadLength = 1000.0
)

// Stepper advances every car once per tick. It mutates cars only inside
// World.Step, so a whole tick is atomic with respect to snapshot readers.
type Stepper struct {
	world *world.World
}

func NewStepper(w *world.World) *Stepper {
	return &Stepper{world: w}
}

// Tick advances all cars by dt seconds of simulated time.
func (s *Stepper) Tick(dt float64) {
	s.world.Step(func(cars []*world.Car, intersections []*world.Intersection) {
		for _, c := range cars {
			stepCar(c, intersections, dt)
		}
	})
}

// stepCar moves one car, handling red-light stops and target progression.
// It never fails: an out-of-range target index is corrected, not rejected.
func stepCar(c *world.Car, intersections []*world.Intersection, dt float64) {
	defer func() {
		// Cars are constrained to a single lane.
		c.Y = 0
	}()

	if len(intersections) == 0 {
		c.X += c.Speed * dt
		if c.X > RoadLength {
			c.X -= RoadLength
		}
		return
	}

	if c.Target < 0 || c.Target >= len(intersections) {
		c.Target = 0
	}
	target := intersections[c.Target]

	desired := c.X + c.Speed*dt

	switch {
	case c.X > target.X+PassMargin:
		// Cleared the stop zone; advance to the next intersection.
		c.Target = (c.Target + 1) % len(intersections)
		c.X = desired

	case c.X < target.X && desired >= target.X-StoppingMargin:
		// Entering the stop zone this tick.
		if target.Color == world.ColorRed {
			// Stop on a dime at the stopping point, no partial braking.
			if stop := target.X - StoppingMargin; desired >= stop {
				c.X = stop
			} else {
				c.X = desired
			}
		} else {
			// Green or yellow: pass through, no slowdown.
			c.X = desired
		}

	default:
		c.X = desired
	}
}
