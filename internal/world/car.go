package world

// Car is a vehicle traveling along the road. Fields are mutated only by the
// physics stepper while the world write lock is held.
type Car struct {
	ID    int
	X     float64 // meters along the road
	Y     float64 // lateral offset, forced back to zero every tick
	Speed float64 // meters per second, zero or positive

	// Target is the index of the intersection the car is currently driving
	// toward. It wraps modulo the intersection count and is reset to zero if
	// intersections are removed out from under it.
	Target int
}

// NewCar returns a car at position x with the given constant speed.
func NewCar(id int, x, speed float64) *Car {
	return &Car{
		ID:    id,
		X:     x,
		Speed: speed,
	}
}
