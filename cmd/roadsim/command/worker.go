package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-roadsim/internal/clock"
	"github.com/pixil98/go-roadsim/internal/frontend"
	"github.com/pixil98/go-roadsim/internal/lights"
	"github.com/pixil98/go-roadsim/internal/messaging"
	"github.com/pixil98/go-roadsim/internal/sim"
	"github.com/pixil98/go-roadsim/internal/world"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Build the world and seed it from the scenario
	w := world.New()
	ids := world.NewIDAllocator(1)
	if err := cfg.Scenario.populate(w, ids); err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}

	// Build the coordinator
	var coordOpts []sim.CoordinatorOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		coordOpts = append(coordOpts, sim.WithTickInterval(d))
	}
	coord := sim.NewCoordinator(w, coordOpts...)

	lightSvc := lights.NewService(w)

	workers := service.WorkerList{}

	// Optional embedded NATS server with telemetry
	var clockOpts []clock.Opt
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns

		if cfg.Telemetry.Enabled {
			var interval time.Duration
			if cfg.Telemetry.Interval != "" {
				interval, err = time.ParseDuration(cfg.Telemetry.Interval)
				if err != nil {
					return nil, fmt.Errorf("parsing telemetry interval: %w", err)
				}
			}
			workers["telemetry"] = messaging.NewTelemetry(ns, coord, interval)
		}

		clockOpts = append(clockOpts, clock.WithTickFunc(func(ts string) {
			// Best-effort: telemetry must never stall the clock.
			_ = ns.Publish(messaging.SubjectClock, []byte(ts))
		}))
	}

	shell := &frontend.Shell{
		World:       w,
		Coord:       coord,
		Lights:      lightSvc,
		Clock:       clock.New(clockOpts...),
		IDs:         ids,
		Autostart:   cfg.Autostart,
		PauseLights: cfg.PauseLightsOnPause,
	}
	workers["shell"] = shell

	// Frontends render snapshots and drive the shell's control surface
	for i, f := range cfg.Frontends {
		fe, err := f.BuildFrontend(shell)
		if err != nil {
			return nil, fmt.Errorf("creating frontend %d: %w", i, err)
		}
		workers[fmt.Sprintf("frontend-%d", i)] = fe
	}

	return workers, nil
}
