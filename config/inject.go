package config

import (
	"context"

	"github.com/kbukum/inject/di"
	"github.com/kbukum/inject/logger"
	"github.com/kbukum/inject/observability"
)

// InjectorOptions translates cfg into injector options. The returned options
// carry a logger tagged with the configured name and, when metrics are
// enabled, instruments on the global meter provider.
func InjectorOptions(cfg *Config) ([]di.Option, error) {
	opts := []di.Option{
		di.WithLogger(logger.New(&cfg.Logging, cfg.Name).WithComponent("di")),
	}
	if cfg.Inject.ValidateInstances {
		opts = append(opts, di.WithInstanceValidation())
	}
	if cfg.Inject.Tracing {
		opts = append(opts, di.WithTracing())
	}
	if cfg.Inject.Metrics {
		metrics, err := observability.NewInjectMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, err
		}
		opts = append(opts, di.WithMetrics(metrics))
	}
	return opts, nil
}

// StartTelemetry installs OTLP exporters for cfg.Telemetry when tracing or
// metrics are enabled. Call it before InjectorOptions so the instruments are
// created on the exporting provider. The returned function is never nil.
func StartTelemetry(ctx context.Context, cfg *Config) (observability.ShutdownFunc, error) {
	if !cfg.Inject.Tracing && !cfg.Inject.Metrics {
		return func(context.Context) error { return nil }, nil
	}
	shutdown, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return func(context.Context) error { return nil }, err
	}
	return shutdown, nil
}
