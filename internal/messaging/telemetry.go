package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-log"

	"github.com/pixil98/go-roadsim/internal/sim"
	"github.com/pixil98/go-roadsim/internal/world"
)

const (
	SubjectSnapshot = "roadsim.snapshot"
	SubjectClock    = "roadsim.clock"

	DefaultTelemetryInterval = time.Second
)

// snapshotMessage is the wire form of one published world snapshot.
type snapshotMessage struct {
	RunID string         `json:"run_id"`
	State string         `json:"state"`
	Ticks uint64         `json:"ticks"`
	World world.Snapshot `json:"world"`
}

// Telemetry periodically publishes world snapshots on the embedded NATS
// server. It is a read-only consumer of the coordinator's snapshot path.
type Telemetry struct {
	server   *NatsServer
	coord    *sim.Coordinator
	interval time.Duration
	runID    string
}

func NewTelemetry(server *NatsServer, coord *sim.Coordinator, interval time.Duration) *Telemetry {
	if interval <= 0 {
		interval = DefaultTelemetryInterval
	}
	return &Telemetry{
		server:   server,
		coord:    coord,
		interval: interval,
		runID:    uuid.New().String(),
	}
}

func (t *Telemetry) Start(ctx context.Context) error {
	logger := log.GetLogger(ctx)
	logger.Infof("telemetry publishing on %s every %s, run %s", SubjectSnapshot, t.interval, t.runID)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := t.publish(); err != nil {
				logger.Errorf("publishing snapshot: %s", err)
			}
		}
	}
}

func (t *Telemetry) publish() error {
	msg := snapshotMessage{
		RunID: t.runID,
		State: t.coord.State().String(),
		Ticks: t.coord.Ticks(),
		World: t.coord.Snapshot(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return t.server.Publish(SubjectSnapshot, data)
}
