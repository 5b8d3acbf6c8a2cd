package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-roadsim/internal/scenario"
	"github.com/pixil98/go-roadsim/internal/world"
)

type ScenarioConfig struct {
	Path string `json:"path,omitempty"`
}

func (c *ScenarioConfig) validate() error {
	if c.Path == "" {
		// Optional: an empty world is valid.
		return nil
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", c.Path, err)
	}
	return nil
}

// populate loads the scenario, if configured, into the world.
func (c *ScenarioConfig) populate(w *world.World, ids *world.IDAllocator) error {
	if c.Path == "" {
		return nil
	}
	s, err := scenario.Load(c.Path)
	if err != nil {
		return err
	}
	s.Populate(w, ids)
	return nil
}
