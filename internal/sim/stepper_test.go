package sim

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-roadsim/internal/world"
)

func TestStepCar(t *testing.T) {
	tests := map[string]struct {
		car           *world.Car
		intersections []*world.Intersection
		dt            float64
		expX          float64
		expTarget     int
	}{
		"free movement with no intersections": {
			car:  &world.Car{X: 10, Speed: 20},
			dt:   0.5,
			expX: 20,
		},
		"wraps at road end with no intersections": {
			car:  &world.Car{X: 995, Speed: 100},
			dt:   0.5,
			expX: 45,
		},
		"far from target moves normally": {
			car: &world.Car{X: 100, Speed: 10},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorRed},
			},
			dt:   0.5,
			expX: 105,
		},
		"red light clamps at stopping margin": {
			car: &world.Car{X: 190, Speed: 100},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorRed},
			},
			dt:   0.5,
			expX: 195,
		},
		"red light holds a stopped car at the margin": {
			car: &world.Car{X: 195, Speed: 60},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorRed},
			},
			dt:   0.5,
			expX: 195,
		},
		"green light passes through": {
			car: &world.Car{X: 190, Speed: 100},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorGreen},
			},
			dt:   0.5,
			expX: 240,
		},
		"yellow light passes through without slowdown": {
			car: &world.Car{X: 190, Speed: 100},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorYellow},
			},
			dt:   0.5,
			expX: 240,
		},
		"past the pass margin advances target": {
			car: &world.Car{X: 203, Speed: 10},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorRed},
				{ID: 2, X: 500, Color: world.ColorRed},
			},
			dt:        0.5,
			expX:      208,
			expTarget: 1,
		},
		"target wraps modulo intersection count": {
			car: &world.Car{X: 203, Speed: 10},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorRed},
			},
			dt:        0.5,
			expX:      208,
			expTarget: 0,
		},
		"out of range target resets to zero": {
			car: &world.Car{X: 100, Speed: 10, Target: 5},
			intersections: []*world.Intersection{
				{ID: 1, X: 500, Color: world.ColorGreen},
			},
			dt:        0.5,
			expX:      105,
			expTarget: 0,
		},
		"zero speed stays put": {
			car: &world.Car{X: 100},
			intersections: []*world.Intersection{
				{ID: 1, X: 200, Color: world.ColorRed},
			},
			dt:   0.5,
			expX: 100,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := world.New()
			for _, i := range tt.intersections {
				w.AddIntersection(i)
			}
			w.AddCar(tt.car)

			NewStepper(w).Tick(tt.dt)

			snap := w.Snapshot()
			testutil.AssertEqual(t, "x", snap.Cars[0].X, tt.expX)
			testutil.AssertEqual(t, "target", snap.Cars[0].Target, tt.expTarget)
			testutil.AssertEqual(t, "y", snap.Cars[0].Y, 0.0)
		})
	}
}

func TestTickForcesLateralOffsetToZero(t *testing.T) {
	w := world.New()
	w.AddCar(&world.Car{ID: 1, X: 10, Y: 3, Speed: 0})

	NewStepper(w).Tick(0.05)

	testutil.AssertEqual(t, "y", w.Snapshot().Cars[0].Y, 0.0)
}

func TestTickUpdatesEveryCarIndependently(t *testing.T) {
	w := world.New()
	w.AddIntersection(&world.Intersection{ID: 1, X: 200, Color: world.ColorRed})
	w.AddCar(&world.Car{ID: 1, X: 190, Speed: 100}) // clamps at 195
	w.AddCar(&world.Car{ID: 2, X: 50, Speed: 100})  // moves freely

	NewStepper(w).Tick(0.5)

	snap := w.Snapshot()
	testutil.AssertEqual(t, "clamped car", snap.Cars[0].X, 195.0)
	testutil.AssertEqual(t, "free car", snap.Cars[1].X, 100.0)
}
