// Package otel provides OpenTelemetry integration for bridge call and
// health observations.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/scenebridge/scenebridge/bridge"
)

// BridgeObserver records bridge observability signals into OpenTelemetry.
type BridgeObserver struct {
	tracer trace.Tracer

	calls   metric.Int64Counter
	health  metric.Int64Counter
	latency metric.Float64Histogram
}

// NewBridgeObserver creates a bridge observer bound to the provided
// meter/tracer.
func NewBridgeObserver(meter metric.Meter, tracer trace.Tracer) (*BridgeObserver, error) {
	calls, err := meter.Int64Counter(
		"scenebridge.bridge.calls",
		metric.WithDescription("Number of bridge calls"),
	)
	if err != nil {
		return nil, err
	}
	health, err := meter.Int64Counter(
		"scenebridge.bridge.health.checks",
		metric.WithDescription("Number of bridge health checks"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"scenebridge.bridge.latency",
		metric.WithDescription("Bridge call latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &BridgeObserver{
		tracer:  tracer,
		calls:   calls,
		health:  health,
		latency: latency,
	}, nil
}

// ObserveCall records one gateway call outcome.
func (o *BridgeObserver) ObserveCall(observation bridge.CallObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("endpoint", observation.Endpoint),
		attribute.Bool("success", observation.Success),
	}
	if observation.ErrorCode != "" {
		attrs = append(attrs, attribute.String("error_code", observation.ErrorCode))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.calls.Add(ctx, 1, options)
	o.latency.Record(ctx, durationSeconds(observation.DurationMS), options)

	if o.tracer == nil {
		return
	}
	spanAttrs := append(attrs, attribute.String("request_id", observation.RequestID))
	_, span := o.tracer.Start(ctx, "bridge.call", trace.WithAttributes(spanAttrs...))
	if !observation.Success {
		span.SetStatus(codes.Error, observation.ErrorCode)
	}
	span.End()
}

// ObserveHealth records one health probe outcome.
func (o *BridgeObserver) ObserveHealth(observation bridge.HealthObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("state", string(observation.State)),
		attribute.String("previous_state", string(observation.PreviousState)),
	}
	if observation.ErrorCode != "" {
		attrs = append(attrs, attribute.String("error_code", observation.ErrorCode))
	}

	ctx := context.Background()
	o.health.Add(ctx, 1, metric.WithAttributes(attrs...))

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "bridge.health", trace.WithAttributes(attrs...))
	if observation.State != bridge.HealthHealthy {
		span.SetStatus(codes.Error, observation.ErrorCode)
	}
	span.End()
}

func durationSeconds(durationMS int64) float64 {
	return float64(time.Duration(durationMS)*time.Millisecond) / float64(time.Second)
}

var _ bridge.Observer = (*BridgeObserver)(nil)
