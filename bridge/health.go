package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// HealthState indicates the current reachability of the bridge.
type HealthState string

const (
	HealthUnknown   HealthState = "unknown"
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
)

const defaultProbeTimeout = 5 * time.Second

// HealthReport is a normalized snapshot of one bridge probe.
type HealthReport struct {
	State     HealthState `json:"state"`
	CheckedAt time.Time   `json:"checked_at"`
	LatencyMS int64       `json:"latency_ms,omitempty"`
	Status    string      `json:"status,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Probe performs a one-shot status check against the bridge. Unlike Call,
// the outcome is a report rather than a content sequence; the serve loop
// and the check command both consume it.
func (c *Client) Probe(ctx context.Context, timeout time.Duration) HealthReport {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	start := time.Now()
	report := HealthReport{CheckedAt: start.UTC()}

	raw, err := c.post(ctx, "status", nil, uuid.NewString(), timeout)
	report.LatencyMS = elapsedMS(start)
	if err != nil {
		report.State = HealthUnhealthy
		report.Error = failureMessage(err)
		return report
	}

	report.State = HealthHealthy
	if payload, classifyErr := Classify(raw); classifyErr == nil {
		if legacy, ok := payload.(LegacyPayload); ok {
			report.Status = legacy.Status
		}
	}
	return report
}

// HealthEvent is delivered when a scheduled probe changes the observed
// bridge state.
type HealthEvent struct {
	Previous HealthState
	State    HealthState
	Report   HealthReport
}

// HealthSchedulerConfig controls scheduled health probing.
type HealthSchedulerConfig struct {
	Client *Client

	// Spec is a cron expression; the standard five-field form and
	// descriptors such as "@every 30s" are both accepted.
	Spec string

	// ProbeTimeout bounds each probe. Defaults to the one-shot default.
	ProbeTimeout time.Duration

	// OnEvent receives state-transition events. Optional.
	OnEvent func(event HealthEvent)
}

// HealthScheduler probes the bridge on a cron schedule and emits health
// observations plus state-transition events.
type HealthScheduler struct {
	client       *Client
	schedule     cron.Schedule
	probeTimeout time.Duration
	onEvent      func(event HealthEvent)
	runner       *cron.Cron

	mu    sync.Mutex
	state HealthState
}

// NewHealthScheduler creates a health scheduler. The cron spec is parsed
// eagerly so a bad expression fails at startup, not at first tick.
func NewHealthScheduler(cfg HealthSchedulerConfig) (*HealthScheduler, error) {
	if cfg.Client == nil {
		return nil, errors.New("bridge: health scheduler client is nil")
	}
	schedule, err := cron.ParseStandard(cfg.Spec)
	if err != nil {
		return nil, fmt.Errorf("bridge: invalid health cron spec %q: %w", cfg.Spec, err)
	}
	if cfg.OnEvent == nil {
		cfg.OnEvent = func(HealthEvent) {}
	}

	scheduler := &HealthScheduler{
		client:       cfg.Client,
		schedule:     schedule,
		probeTimeout: cfg.ProbeTimeout,
		onEvent:      cfg.OnEvent,
		state:        HealthUnknown,
	}
	scheduler.runner = cron.New()
	scheduler.runner.Schedule(schedule, cron.FuncJob(scheduler.tick))
	return scheduler, nil
}

// Start begins scheduled probing. Calling Start on a running scheduler is
// a no-op.
func (s *HealthScheduler) Start() {
	s.runner.Start()
}

// Stop halts scheduling and waits for an in-flight probe to finish.
func (s *HealthScheduler) Stop(ctx context.Context) error {
	done := s.runner.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the most recently observed bridge state.
func (s *HealthScheduler) State() HealthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *HealthScheduler) tick() {
	report := s.client.Probe(context.Background(), s.probeTimeout)

	s.mu.Lock()
	previous := s.state
	s.state = report.State
	s.mu.Unlock()

	errorCode := ""
	if report.State != HealthHealthy {
		errorCode = CodeConnectivity
	}
	now := time.Now()
	emitHealthObservation(HealthObservation{
		State:         report.State,
		PreviousState: previous,
		DurationMS:    report.LatencyMS,
		Interval:      s.schedule.Next(now).Sub(now),
		ErrorCode:     errorCode,
	})

	if report.State != previous {
		s.onEvent(HealthEvent{Previous: previous, State: report.State, Report: report})
	}
}
