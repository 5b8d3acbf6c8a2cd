package clock

type Opt func(*Clock)

// WithTickFunc registers a callback invoked with each published timestamp.
// The shell uses this to forward the readout to telemetry.
func WithTickFunc(fn func(string)) Opt {
	return func(c *Clock) {
		c.onTick = fn
	}
}
