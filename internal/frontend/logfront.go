package frontend

import (
	"context"
	"time"

	"github.com/pixil98/go-log"
)

const DefaultLogInterval = 5 * time.Second

// LogFrontend is a headless frontend that periodically logs a snapshot
// summary. Useful when the simulator runs as a service with only NATS
// telemetry attached.
type LogFrontend struct {
	shell    *Shell
	interval time.Duration
}

func NewLogFrontend(shell *Shell, interval time.Duration) *LogFrontend {
	if interval <= 0 {
		interval = DefaultLogInterval
	}
	return &LogFrontend{
		shell:    shell,
		interval: interval,
	}
}

// Start implements service.Worker.
func (f *LogFrontend) Start(ctx context.Context) error {
	logger := log.GetLogger(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap := f.shell.Coord.Snapshot()
			logger.Infof("%s %s tick=%d intersections=%d cars=%d",
				f.shell.Clock.Now(), f.shell.Coord.State(), f.shell.Coord.Ticks(),
				len(snap.Intersections), len(snap.Cars))
		}
	}
}
