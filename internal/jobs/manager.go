// Package jobs tracks the single allowed randomization job: one worker
// goroutine per job, a snapshot the render loop can poll every frame,
// and cooperative cancellation.
package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/randomize"
)

// ErrJobAlreadyRunning is returned when starting a second active job.
var ErrJobAlreadyRunning = errors.New("job already running")

// ErrNoActiveJob is returned when cancel is requested with no job running.
var ErrNoActiveJob = errors.New("no active job")

// ErrJobStillRunning is returned when acknowledging a job that has not
// reached a terminal state yet.
var ErrJobStillRunning = errors.New("job still running")

// State is the lifecycle state of the current job.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateCancelled
)

// String returns the display name for the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// logLimit bounds the retained engine output lines in a status snapshot.
const logLimit = 8

// Status is the whole-record snapshot shared across the thread
// boundary. The worker publishes updates under the manager's lock; Poll
// copies the full record, so a reader can never observe a torn update.
type Status struct {
	ID          string
	State       State
	Stage       string
	RomPath     string
	LogLines    []string
	OutputPath  string
	ErrorDetail string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Elapsed returns how long the job has been running, or its total
// duration once finished. Best-effort progress for the running scene.
func (s Status) Elapsed() time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return time.Since(s.StartedAt)
}

// Request identifies the ROM and settings profile for one job. The
// settings profile is resolved before Start; the manager never refuses
// mid-flight for configuration reasons.
type Request struct {
	RomPath      string
	SettingsPath string
}

// Runner executes one randomization run. randomize.Pipeline is the
// production implementation; tests substitute a fake.
type Runner interface {
	Run(cancel <-chan struct{}, req randomize.Request) (randomize.Result, error)
}

// Manager owns the current job. At most one job exists at a time; the
// worker goroutine is the sole writer that moves state out of Running,
// and the interactive loop is a read-only observer plus the sole caller
// of Cancel.
type Manager struct {
	runner Runner

	mu        sync.RWMutex
	status    Status
	cancel    chan struct{}
	cancelled bool
}

// NewManager creates a manager in idle state.
func NewManager(runner Runner) *Manager {
	return &Manager{
		runner: runner,
		status: Status{State: StateIdle},
	}
}

// Start launches a worker for the request. It returns
// ErrJobAlreadyRunning without doing any filesystem or process work when
// a job is active. Starting from an unacknowledged terminal state
// replaces the finished job.
func (m *Manager) Start(req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status.State == StateRunning {
		return "", ErrJobAlreadyRunning
	}

	id := uuid.NewString()
	cancel := make(chan struct{})
	m.cancel = cancel
	m.cancelled = false
	m.status = Status{
		ID:        id,
		State:     StateRunning,
		Stage:     "starting",
		RomPath:   req.RomPath,
		StartedAt: time.Now(),
	}

	go m.run(id, cancel, req)
	return id, nil
}

// run is the worker goroutine: it executes the pipeline and publishes
// exactly one terminal state.
func (m *Manager) run(id string, cancel <-chan struct{}, req Request) {
	result, err := m.runner.Run(cancel, randomize.Request{
		RomPath:      req.RomPath,
		SettingsPath: req.SettingsPath,
		OnStage: func(stage string) {
			m.updateRunning(id, func(s *Status) { s.Stage = stage })
		},
		OnLine: func(line string) {
			m.updateRunning(id, func(s *Status) {
				s.LogLines = append(s.LogLines, line)
				if len(s.LogLines) > logLimit {
					s.LogLines = s.LogLines[len(s.LogLines)-logLimit:]
				}
			})
		},
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.ID != id {
		// A later Start replaced this job; its outcome is stale
		return
	}

	m.status.FinishedAt = time.Now()
	switch {
	case err == nil:
		m.status.State = StateSucceeded
		m.status.OutputPath = result.OutputPath
	case errors.Is(err, randomize.ErrCancelled):
		m.status.State = StateCancelled
	default:
		m.status.State = StateFailed
		var perr *randomize.PipelineError
		if errors.As(err, &perr) {
			m.status.Stage = perr.Stage
			m.status.ErrorDetail = perr.Detail()
		} else {
			m.status.ErrorDetail = err.Error()
		}
	}
}

// updateRunning applies a mutation to the status while the given job is
// still the running one. Progress callbacks racing a terminal publish
// are dropped.
func (m *Manager) updateRunning(id string, fn func(*Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.ID != id || m.status.State != StateRunning {
		return
	}
	fn(&m.status)
}

// Poll returns the latest consistent snapshot. Non-blocking; called
// every frame from the render loop. Terminal states are sticky until
// Acknowledge.
func (m *Manager) Poll() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.status
	// Detach the slice so a later append by the worker cannot alias
	// into the reader's copy
	if len(snap.LogLines) > 0 {
		lines := make([]string, len(snap.LogLines))
		copy(lines, m.status.LogLines)
		snap.LogLines = lines
	}
	return snap
}

// Cancel requests termination of the running job. The worker handles
// the actual process teardown and publishes Cancelled; Cancel itself
// never blocks.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status.State != StateRunning {
		return ErrNoActiveJob
	}
	if !m.cancelled {
		m.cancelled = true
		close(m.cancel)
	}
	return nil
}

// Acknowledge consumes a terminal state and returns the manager to
// idle. Acknowledging a running job is an error.
func (m *Manager) Acknowledge() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status.State == StateRunning {
		return ErrJobStillRunning
	}
	m.status = Status{State: StateIdle}
	return nil
}
