package world

import "time"

// CarView is a value copy of one car, safe to hold outside the world lock.
type CarView struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Speed  float64 `json:"speed"`
	Target int     `json:"target"`
}

// IntersectionView is a value copy of one intersection.
type IntersectionView struct {
	ID     int           `json:"id"`
	X      float64       `json:"x"`
	Color  Color         `json:"color"`
	Green  time.Duration `json:"green"`
	Yellow time.Duration `json:"yellow"`
	Red    time.Duration `json:"red"`
}

// Snapshot is a consistent, non-torn view of the world, in stable order.
type Snapshot struct {
	Units         string             `json:"units"`
	Intersections []IntersectionView `json:"intersections"`
	Cars          []CarView          `json:"cars"`
}
