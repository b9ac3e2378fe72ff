package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records run and step metrics.
// Use NewMetricsRecorder for OTel metrics or NoopMetrics when disabled.
type MetricsRecorder interface {
	// RecordStepExecution records one step dispatch with its duration and
	// error status.
	RecordStepExecution(ctx context.Context, step string, duration time.Duration, err error)

	// RecordRun records a run completion.
	RecordRun(ctx context.Context, success bool, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	stepExecutions metric.Int64Counter
	stepLatency    metric.Float64Histogram
	stepErrors     metric.Int64Counter
	runs           metric.Int64Counter
	runLatency     metric.Float64Histogram
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. The application name identifies the instrumentation scope
// and prefixes every instrument name.
func NewMetricsRecorder(app, version string) (MetricsRecorder, error) {
	meter := otel.Meter(app, metric.WithInstrumentationVersion(version))

	stepExecutions, err := meter.Int64Counter(app+".step.executions",
		metric.WithDescription("Number of step dispatches"),
	)
	if err != nil {
		return nil, err
	}

	stepLatency, err := meter.Float64Histogram(app+".step.latency_ms",
		metric.WithDescription("Step execution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	stepErrors, err := meter.Int64Counter(app+".step.errors",
		metric.WithDescription("Number of step execution errors"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(app+".runs",
		metric.WithDescription("Number of runs"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram(app+".run.latency_ms",
		metric.WithDescription("Run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		stepExecutions: stepExecutions,
		stepLatency:    stepLatency,
		stepErrors:     stepErrors,
		runs:           runs,
		runLatency:     runLatency,
	}, nil
}

// RecordStepExecution records one step dispatch.
func (m *otelMetrics) RecordStepExecution(ctx context.Context, step string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("step", step))

	m.stepExecutions.Add(ctx, 1, attrs)
	m.stepLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.stepErrors.Add(ctx, 1, attrs)
	}
}

// RecordRun records a run completion.
func (m *otelMetrics) RecordRun(ctx context.Context, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))

	m.runs.Add(ctx, 1, attrs)
	m.runLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
}
