package lights

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anggasct/fluo"

	"github.com/pixil98/go-roadsim/internal/world"
)

const (
	// pollInterval is the granularity at which a phase wait notices pause
	// and cancellation.
	pollInterval = 100 * time.Millisecond

	// shutdownWait bounds how long Stop waits for all tasks to observe
	// cancellation before giving up on them.
	shutdownWait = 2 * time.Second
)

// Service runs one light cycle task per intersection. Tasks are fully
// independent of each other; the only shared state is the pause flag and the
// world's write lock, which every color write goes through.
type Service struct {
	world *world.World
	def   fluo.MachineDefinition

	paused atomic.Bool

	mu      sync.Mutex
	running bool
	tasks   map[int]*task
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewService(w *world.World) *Service {
	return &Service{
		world: w,
		def:   phaseMachine(),
		tasks: make(map[int]*task),
	}
}

// Start enables the service. Idempotent; lights are not started implicitly,
// the shell calls StartLight per intersection.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = true
}

// Stop cancels every task and waits briefly for clean termination. Tasks
// observe cancellation at their next polling check; any that overrun the
// bounded wait are abandoned. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.paused.Store(false)
	tasks := s.tasks
	s.tasks = make(map[int]*task)
	s.mu.Unlock()

	for _, t := range tasks {
		t.cancel()
	}
	deadline := time.After(shutdownWait)
	for id, t := range tasks {
		select {
		case <-t.done:
		case <-deadline:
			slog.Error("light cycle task did not stop in time", "intersection", id)
			return
		}
	}
}

// Pause freezes the remaining phase wait of every active task. Time spent
// paused does not count toward any phase duration.
func (s *Service) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.paused.Store(true)
}

// Resume lets every active task continue its phase wait from where it left
// off.
func (s *Service) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.paused.Store(false)
}

// Running reports whether the service is started.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Paused reports whether the shared pause flag is set.
func (s *Service) Paused() bool {
	return s.paused.Load()
}

// StartLight spawns the cycle task for the intersection with the given id.
// A no-op if the service is stopped or the intersection already has a task.
func (s *Service) StartLight(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	if _, exists := s.tasks[id]; exists {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}
	s.tasks[id] = t
	go s.runLight(ctx, id, t.done)
}

// StopLight cancels and removes the intersection's task. Non-interrupting:
// the task exits at its next polling check. A no-op if no task exists.
func (s *Service) StopLight(id int) {
	s.mu.Lock()
	t, exists := s.tasks[id]
	if exists {
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	if exists {
		t.cancel()
	}
}

// runLight is one intersection's cycle task. On entering a phase the color is
// written immediately, then the task waits out the configured duration before
// advancing the machine.
func (s *Service) runLight(ctx context.Context, id int, done chan struct{}) {
	defer close(done)

	m := s.def.CreateInstance()
	if err := m.Start(); err != nil {
		slog.Error("starting light phase machine", "intersection", id, "error", err)
		return
	}

	for {
		color := phaseColor(m.CurrentState())
		if !s.world.SetColor(id, color) {
			// Intersection was removed out from under us.
			return
		}

		green, yellow, red, ok := s.world.Phases(id)
		if !ok {
			return
		}
		var phase time.Duration
		switch color {
		case world.ColorGreen:
			phase = green
		case world.ColorYellow:
			phase = yellow
		case world.ColorRed:
			phase = red
		}

		if !s.wait(ctx, phase) {
			return
		}

		if res := m.SendEvent(eventAdvance, nil); !res.Success() {
			slog.Error("advancing light phase", "intersection", id, "state", m.CurrentState(), "reason", res.RejectionReason)
			return
		}
	}
}

// wait sleeps out a phase duration in pollInterval chunks. While the shared
// pause flag is set, elapsed chunks are not deducted, so the remaining wait
// resumes from where it left off. Returns false on cancellation.
func (s *Service) wait(ctx context.Context, d time.Duration) bool {
	remaining := d
	for remaining > 0 {
		chunk := pollInterval
		if !s.paused.Load() && remaining < chunk {
			chunk = remaining
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(chunk):
		}

		if s.paused.Load() {
			continue
		}
		remaining -= chunk
	}
	return true
}
