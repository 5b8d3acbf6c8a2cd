package world

import "time"

const (
	DefaultGreenDuration  = 10 * time.Second
	DefaultYellowDuration = 2 * time.Second
	DefaultRedDuration    = 12 * time.Second
)

// Intersection is a signaled crossing on the road. Its color is mutated only
// by its light cycle task, through the world's write lock.
type Intersection struct {
	ID    int
	X     float64 // meters along the road
	Color Color

	// Phase durations. Strictly positive; re-read by the light cycle task on
	// each phase entry, so edits take effect at the next phase.
	Green  time.Duration
	Yellow time.Duration
	Red    time.Duration
}

// NewIntersection returns an intersection at position x showing red, with the
// default phase durations.
func NewIntersection(id int, x float64) *Intersection {
	return &Intersection{
		ID:     id,
		X:      x,
		Color:  ColorRed,
		Green:  DefaultGreenDuration,
		Yellow: DefaultYellowDuration,
		Red:    DefaultRedDuration,
	}
}

// NewIntersectionWithPhases returns an intersection with explicit phase
// durations. Non-positive durations fall back to the defaults.
func NewIntersectionWithPhases(id int, x float64, green, yellow, red time.Duration) *Intersection {
	i := NewIntersection(id, x)
	if green > 0 {
		i.Green = green
	}
	if yellow > 0 {
		i.Yellow = yellow
	}
	if red > 0 {
		i.Red = red
	}
	return i
}
