package bridge

import (
	"sync"
	"time"
)

// CallObservation captures one gateway call outcome.
type CallObservation struct {
	Endpoint   string
	RequestID  string
	DurationMS int64
	Success    bool
	ErrorCode  string
}

// HealthObservation captures one health-probe outcome.
type HealthObservation struct {
	State         HealthState
	PreviousState HealthState
	DurationMS    int64
	Interval      time.Duration
	ErrorCode     string
}

// Observer receives bridge-level observability events.
type Observer interface {
	ObserveCall(observation CallObservation)
	ObserveHealth(observation HealthObservation)
}

type noopObserver struct{}

func (noopObserver) ObserveCall(CallObservation)     {}
func (noopObserver) ObserveHealth(HealthObservation) {}

var (
	observerMu     sync.RWMutex
	activeObserver Observer = noopObserver{}
)

// SetObserver sets the process-wide bridge observability observer.
func SetObserver(observer Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if observer == nil {
		activeObserver = noopObserver{}
		return
	}
	activeObserver = observer
}

func emitCallObservation(observation CallObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveCall(observation)
}

func emitHealthObservation(observation HealthObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveHealth(observation)
}
