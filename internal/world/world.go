package world

import (
	"sort"
	"sync"
	"time"
)

const DefaultUnits = "meters/second"

// World is the single source of truth for all mutable simulation state.
// Every mutation path (physics stepper, light cycle tasks, add/remove) funnels
// through methods that take the write lock, and Snapshot copies under the read
// lock, so readers never observe a half-updated car or a torn color write.
type World struct {
	mu            sync.RWMutex
	units         string
	intersections []*Intersection
	cars          []*Car
}

// New creates an empty world.
func New() *World {
	return &World{
		units: DefaultUnits,
	}
}

// AddIntersection inserts an intersection, keeping the list sorted by
// position. Sort order is a presentation convenience only; the stepper
// navigates by each car's target index.
func (w *World) AddIntersection(i *Intersection) {
	w.mu.Lock()
	defer w.mu.Unlock()

	at := sort.Search(len(w.intersections), func(n int) bool {
		return w.intersections[n].X > i.X
	})
	w.intersections = append(w.intersections, nil)
	copy(w.intersections[at+1:], w.intersections[at:])
	w.intersections[at] = i
}

// RemoveIntersection removes the intersection with the given id. It reports
// whether anything was removed. The caller is responsible for cancelling the
// intersection's light cycle task.
func (w *World) RemoveIntersection(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for n, i := range w.intersections {
		if i.ID == id {
			w.intersections = append(w.intersections[:n], w.intersections[n+1:]...)
			return true
		}
	}
	return false
}

// AddCar appends a car to the world.
func (w *World) AddCar(c *Car) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cars = append(w.cars, c)
}

// RemoveCar removes the car with the given id. Safe to call while ticks are
// in progress; the stepper only ever walks the list under the same lock.
func (w *World) RemoveCar(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for n, c := range w.cars {
		if c.ID == id {
			w.cars = append(w.cars[:n], w.cars[n+1:]...)
			return true
		}
	}
	return false
}

// Reset drops every car and intersection.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.intersections = nil
	w.cars = nil
}

// Counts returns the number of intersections and cars.
func (w *World) Counts() (intersections, cars int) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.intersections), len(w.cars)
}

// Units returns the display units label.
func (w *World) Units() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.units
}

// SetUnits sets the display units label.
func (w *World) SetUnits(units string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.units = units
}

// SetColor sets the signal color of the intersection with the given id. It
// reports false if the intersection no longer exists.
func (w *World) SetColor(id int, c Color) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, i := range w.intersections {
		if i.ID == id {
			i.Color = c
			return true
		}
	}
	return false
}

// Phases returns the configured phase durations of the intersection with the
// given id. It reports false if the intersection no longer exists.
func (w *World) Phases(id int) (green, yellow, red time.Duration, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, i := range w.intersections {
		if i.ID == id {
			return i.Green, i.Yellow, i.Red, true
		}
	}
	return 0, 0, 0, false
}

// SetPhases updates the phase durations of the intersection with the given
// id. Non-positive durations leave the current value untouched.
func (w *World) SetPhases(id int, green, yellow, red time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, i := range w.intersections {
		if i.ID == id {
			if green > 0 {
				i.Green = green
			}
			if yellow > 0 {
				i.Yellow = yellow
			}
			if red > 0 {
				i.Red = red
			}
			return true
		}
	}
	return false
}

// Step runs fn with the write lock held, passing the live car and
// intersection lists. The physics stepper uses this to mutate every car in a
// tick as one atomic unit with respect to Snapshot readers. fn must not
// retain the slices after it returns.
func (w *World) Step(fn func(cars []*Car, intersections []*Intersection)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	fn(w.cars, w.intersections)
}

// Snapshot returns a consistent copy of the world for rendering. It may be
// called concurrently with ticks in progress; readers run concurrently with
// each other but never interleave with a writer.
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s := Snapshot{
		Units:         w.units,
		Intersections: make([]IntersectionView, len(w.intersections)),
		Cars:          make([]CarView, len(w.cars)),
	}
	for n, i := range w.intersections {
		s.Intersections[n] = IntersectionView{
			ID:     i.ID,
			X:      i.X,
			Color:  i.Color,
			Green:  i.Green,
			Yellow: i.Yellow,
			Red:    i.Red,
		}
	}
	for n, c := range w.cars {
		s.Cars[n] = CarView{
			ID:     c.ID,
			X:      c.X,
			Y:      c.Y,
			Speed:  c.Speed,
			Target: c.Target,
		}
	}
	return s
}
