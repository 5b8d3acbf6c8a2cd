package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string `json:"tick_interval"`

	// Autostart runs the simulation as soon as the shell is up instead of
	// waiting for a frontend command.
	Autostart bool `json:"autostart"`

	// PauseLightsOnPause freezes light cycles whenever the simulation
	// pauses.
	PauseLightsOnPause bool `json:"pause_lights_on_pause"`

	Scenario  ScenarioConfig   `json:"scenario"`
	Nats      NatsConfig       `json:"nats"`
	Telemetry TelemetryConfig  `json:"telemetry"`
	Frontends []FrontendConfig `json:"frontends"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < 10*time.Millisecond {
			el.Add(fmt.Errorf("tick_interval must be at least 10ms"))
		}
	}

	for i, f := range c.Frontends {
		err := f.validate()
		if err != nil {
			el.Add(fmt.Errorf("frontend %d: %w", i, err))
		}
	}

	el.Add(c.Scenario.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Telemetry.validate())

	return el.Err()
}

type TelemetryConfig struct {
	Enabled  bool   `json:"enabled"`
	Interval string `json:"interval"`
}

func (c *TelemetryConfig) validate() error {
	el := errors.NewErrorList()

	if c.Interval != "" {
		_, err := time.ParseDuration(c.Interval)
		if err != nil {
			el.Add(fmt.Errorf("parsing interval: %w", err))
		}
	}

	return el.Err()
}
