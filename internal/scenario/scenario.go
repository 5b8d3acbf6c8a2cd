// Package scenario loads an initial world description from a JSON document.
// Validation happens here, at the shell boundary; the core never sees a
// malformed entity.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-roadsim/internal/world"
)

// IntersectionSpec describes one intersection. Phase durations are Go
// duration strings; empty means the default for that phase.
type IntersectionSpec struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Green  string  `json:"green,omitempty"`
	Yellow string  `json:"yellow,omitempty"`
	Red    string  `json:"red,omitempty"`
}

func (s *IntersectionSpec) Validate() error {
	el := errors.NewErrorList()

	if s.ID <= 0 {
		el.Add(fmt.Errorf("id must be a positive integer"))
	}
	if s.X < 0 {
		el.Add(fmt.Errorf("x must not be negative"))
	}
	for _, p := range []struct {
		name  string
		value string
	}{
		{"green", s.Green},
		{"yellow", s.Yellow},
		{"red", s.Red},
	} {
		if p.value == "" {
			continue
		}
		d, err := time.ParseDuration(p.value)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", p.name, err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("%s must be a positive duration", p.name))
		}
	}

	return el.Err()
}

// build returns the intersection entity. Must only be called after Validate.
func (s *IntersectionSpec) build() *world.Intersection {
	green, _ := time.ParseDuration(s.Green)
	yellow, _ := time.ParseDuration(s.Yellow)
	red, _ := time.ParseDuration(s.Red)
	return world.NewIntersectionWithPhases(s.ID, s.X, green, yellow, red)
}

// CarSpec describes one car.
type CarSpec struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Speed float64 `json:"speed"`
}

func (s *CarSpec) Validate() error {
	el := errors.NewErrorList()

	if s.ID <= 0 {
		el.Add(fmt.Errorf("id must be a positive integer"))
	}
	if s.X < 0 {
		el.Add(fmt.Errorf("x must not be negative"))
	}
	if s.Speed < 0 {
		el.Add(fmt.Errorf("speed must not be negative"))
	}

	return el.Err()
}

// Scenario is a complete initial world description.
type Scenario struct {
	Units         string             `json:"units,omitempty"`
	Intersections []IntersectionSpec `json:"intersections"`
	Cars          []CarSpec          `json:"cars"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario %q: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses and validates a scenario document.
func Read(r io.Reader) (*Scenario, error) {
	var s Scenario
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	el := errors.NewErrorList()

	seen := make(map[int]bool)
	for n, is := range s.Intersections {
		if err := is.Validate(); err != nil {
			el.Add(fmt.Errorf("intersection %d: %w", n, err))
		}
		if seen[is.ID] {
			el.Add(fmt.Errorf("intersection %d: duplicate id %d", n, is.ID))
		}
		seen[is.ID] = true
	}

	seen = make(map[int]bool)
	for n, cs := range s.Cars {
		if err := cs.Validate(); err != nil {
			el.Add(fmt.Errorf("car %d: %w", n, err))
		}
		if seen[cs.ID] {
			el.Add(fmt.Errorf("car %d: duplicate id %d", n, cs.ID))
		}
		seen[cs.ID] = true
	}

	return el.Err()
}

// Populate fills the world with the scenario's entities and reserves their
// ids on the allocator so later user-created entities don't collide.
func (s *Scenario) Populate(w *world.World, ids *world.IDAllocator) {
	if s.Units != "" {
		w.SetUnits(s.Units)
	}
	for _, is := range s.Intersections {
		w.AddIntersection(is.build())
		ids.Reserve(is.ID)
	}
	for _, cs := range s.Cars {
		w.AddCar(world.NewCar(cs.ID, cs.X, cs.Speed))
		ids.Reserve(cs.ID)
	}
}
