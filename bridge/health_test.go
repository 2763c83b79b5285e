package bridge

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestProbeHealthy(t *testing.T) {
	client := testClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/status" {
			t.Fatalf("path = %s, want /status", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"status":"idle"}`), nil
	})

	report := client.Probe(context.Background(), time.Second)
	if report.State != HealthHealthy {
		t.Fatalf("State = %s, want healthy", report.State)
	}
	if report.Status != "idle" {
		t.Fatalf("Status = %q, want idle", report.Status)
	}
	if report.Error != "" {
		t.Fatalf("Error = %q, want empty", report.Error)
	}
}

func TestProbeUnhealthy(t *testing.T) {
	client := testClient(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	report := client.Probe(context.Background(), time.Second)
	if report.State != HealthUnhealthy {
		t.Fatalf("State = %s, want unhealthy", report.State)
	}
	if report.Error == "" {
		t.Fatal("Error is empty, want connectivity message")
	}
}

func TestNewHealthSchedulerValidation(t *testing.T) {
	client := testClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{}"), nil
	})

	if _, err := NewHealthScheduler(HealthSchedulerConfig{Spec: "@every 30s"}); err == nil {
		t.Fatal("error = nil, want nil-client failure")
	}
	if _, err := NewHealthScheduler(HealthSchedulerConfig{Client: client, Spec: "definitely not cron"}); err == nil {
		t.Fatal("error = nil, want cron parse failure")
	}
	if _, err := NewHealthScheduler(HealthSchedulerConfig{Client: client, Spec: "@every 30s"}); err != nil {
		t.Fatalf("error = %v, want valid scheduler", err)
	}
}

func TestHealthSchedulerTickEmitsTransitions(t *testing.T) {
	healthy := true
	client := testClient(t, func(r *http.Request) (*http.Response, error) {
		if !healthy {
			return nil, errors.New("connection refused")
		}
		return jsonResponse(http.StatusOK, `{"status":"idle"}`), nil
	})

	var events []HealthEvent
	scheduler, err := NewHealthScheduler(HealthSchedulerConfig{
		Client: client,
		Spec:   "@every 1h",
		OnEvent: func(event HealthEvent) {
			events = append(events, event)
		},
	})
	if err != nil {
		t.Fatalf("NewHealthScheduler() error = %v", err)
	}

	scheduler.tick()
	scheduler.tick() // same state, no new event
	healthy = false
	scheduler.tick()

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Previous != HealthUnknown || events[0].State != HealthHealthy {
		t.Fatalf("events[0] = %+v", events[0])
	}
	if events[1].Previous != HealthHealthy || events[1].State != HealthUnhealthy {
		t.Fatalf("events[1] = %+v", events[1])
	}
	if scheduler.State() != HealthUnhealthy {
		t.Fatalf("State() = %s, want unhealthy", scheduler.State())
	}
}
