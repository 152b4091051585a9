package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Span and attribute names used by the injector.
const (
	SpanInjectPrefix = "di."

	AttrInjectType     = "di.type"
	AttrInjectName     = "di.name"
	AttrInjectInjector = "di.injector"
	AttrInjectModule   = "di.module"
)

// Resolution status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// InjectMetrics holds the instruments recorded by the injector.
type InjectMetrics struct {
	resolutions    metric.Int64Counter
	duration       metric.Float64Histogram
	injectedFields metric.Int64Counter
}

// NewInjectMetrics creates the injector instruments on the given meter.
func NewInjectMetrics(meter metric.Meter) (*InjectMetrics, error) {
	resolutions, err := meter.Int64Counter("inject.resolutions",
		metric.WithDescription("Total number of injector resolutions by operation and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating inject.resolutions counter: %w", err)
	}

	duration, err := meter.Float64Histogram("inject.resolution.duration",
		metric.WithDescription("Duration of injector resolutions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating inject.resolution.duration histogram: %w", err)
	}

	injectedFields, err := meter.Int64Counter("inject.injected_fields",
		metric.WithDescription("Total number of fields populated by member injection"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating inject.injected_fields counter: %w", err)
	}

	return &InjectMetrics{
		resolutions:    resolutions,
		duration:       duration,
		injectedFields: injectedFields,
	}, nil
}

// RecordResolution records one public injector operation.
func (m *InjectMetrics) RecordResolution(ctx context.Context, operation string, err error, d time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String(AttrStatus, status),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordInjectedField records one populated field on an instance of typ.
func (m *InjectMetrics) RecordInjectedField(ctx context.Context, typ string) {
	m.injectedFields.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrInjectType, typ),
	))
}
