package sim

import "time"

type CoordinatorOpt func(*Coordinator)

// WithTickInterval overrides the default 50ms stepper cadence.
func WithTickInterval(d time.Duration) CoordinatorOpt {
	return func(c *Coordinator) {
		if d > 0 {
			c.interval = d
		}
	}
}
