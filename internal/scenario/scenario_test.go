package scenario

import (
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-roadsim/internal/world"
)

const validScenario = `{
	"units": "meters/second",
	"intersections": [
		{"id": 2, "x": 400, "green": "8s", "yellow": "1s", "red": "6s"},
		{"id": 1, "x": 200}
	],
	"cars": [
		{"id": 3, "x": 0, "speed": 15},
		{"id": 4, "x": 50, "speed": 0}
	]
}`

func TestReadValidScenario(t *testing.T) {
	s, err := Read(strings.NewReader(validScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "intersections", len(s.Intersections), 2)
	testutil.AssertEqual(t, "cars", len(s.Cars), 2)
}

func TestReadInvalidScenario(t *testing.T) {
	tests := map[string]string{
		"malformed json":        `{`,
		"duplicate car id":      `{"cars": [{"id": 1, "x": 0}, {"id": 1, "x": 10}]}`,
		"duplicate light id":    `{"intersections": [{"id": 1, "x": 0}, {"id": 1, "x": 10}]}`,
		"negative speed":        `{"cars": [{"id": 1, "x": 0, "speed": -5}]}`,
		"negative position":     `{"cars": [{"id": 1, "x": -1}]}`,
		"zero id":               `{"cars": [{"id": 0, "x": 0}]}`,
		"bad phase duration":    `{"intersections": [{"id": 1, "x": 0, "green": "fast"}]}`,
		"negative phase":        `{"intersections": [{"id": 1, "x": 0, "red": "-3s"}]}`,
		"zero duration phase":   `{"intersections": [{"id": 1, "x": 0, "yellow": "0s"}]}`,
		"negative intersection": `{"intersections": [{"id": 1, "x": -10}]}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(doc)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPopulate(t *testing.T) {
	s, err := Read(strings.NewReader(validScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := world.New()
	ids := world.NewIDAllocator(1)
	s.Populate(w, ids)

	snap := w.Snapshot()
	testutil.AssertEqual(t, "units", snap.Units, "meters/second")
	testutil.AssertEqual(t, "intersections", len(snap.Intersections), 2)
	testutil.AssertEqual(t, "cars", len(snap.Cars), 2)

	// Inserted sorted by position regardless of document order.
	testutil.AssertEqual(t, "first intersection", snap.Intersections[0].ID, 1)
	testutil.AssertEqual(t, "second intersection", snap.Intersections[1].ID, 2)

	// Explicit phases land; omitted phases fall back to defaults.
	testutil.AssertEqual(t, "custom green", snap.Intersections[1].Green, 8*time.Second)
	testutil.AssertEqual(t, "default green", snap.Intersections[0].Green, world.DefaultGreenDuration)

	// Scenario ids are reserved on the allocator.
	testutil.AssertEqual(t, "next id", ids.Next(), 5)
}
