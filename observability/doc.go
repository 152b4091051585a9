// Package observability provides OpenTelemetry tracing and metrics for the
// injector.
//
// Export to an OTLP collector:
//
//	shutdown, err := observability.Setup(ctx, observability.DefaultTelemetryConfig("my-service"))
//	defer shutdown(ctx)
//
// Record injector activity:
//
//	metrics, err := observability.NewInjectMetrics(observability.Meter("my-service"))
//	inj, err := di.New(module, di.WithTracing(), di.WithMetrics(metrics))
package observability
