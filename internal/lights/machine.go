// Package lights cycles each intersection's signal through its color phases
// on an independent task, with pausable timing.
package lights

import (
	"github.com/anggasct/fluo"

	"github.com/pixil98/go-roadsim/internal/world"
)

const (
	stateGreen  = "green"
	stateYellow = "yellow"
	stateRed    = "red"

	// eventAdvance moves a light to its next phase.
	eventAdvance = "advance"
)

// phaseMachine defines the cyclic GREEN -> YELLOW -> RED phase machine. The
// cycler owns the timing; the machine owns which transitions are legal.
func phaseMachine() fluo.MachineDefinition {
	b := fluo.NewMachine()

	b.State(stateGreen).Initial().
		To(stateYellow).On(eventAdvance)

	b.State(stateYellow).
		To(stateRed).On(eventAdvance)

	b.State(stateRed).
		To(stateGreen).On(eventAdvance)

	return b.Build()
}

// phaseColor maps a machine state to the color shown to the world.
func phaseColor(state string) world.Color {
	switch state {
	case stateYellow:
		return world.ColorYellow
	case stateRed:
		return world.ColorRed
	default:
		return world.ColorGreen
	}
}
