package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager for OTel tracing or NoopSpanManager when disabled.
type SpanManager interface {
	// StartRunSpan starts a span covering the entire run.
	StartRunSpan(ctx context.Context, runID string) (context.Context, trace.Span)

	// StartStepSpan starts a child span for one step dispatch.
	StartStepSpan(ctx context.Context, step, kind string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, recording err when non-nil.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	app    string
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager backed by the global OTel tracer
// provider. The application name and version identify the instrumentation
// scope; both come from the caller rather than any package-level constant.
//
// Configure the provider before calling this function:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager(app, version string) SpanManager {
	return &otelSpanManager{
		app:    app,
		tracer: otel.Tracer(app, trace.WithInstrumentationVersion(version)),
	}
}

// StartRunSpan starts a span covering the entire run.
func (m *otelSpanManager) StartRunSpan(ctx context.Context, runID string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, m.app+".run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStepSpan starts a child span for one step dispatch.
func (m *otelSpanManager) StartStepSpan(ctx context.Context, step, kind string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, m.app+".step."+step,
		trace.WithAttributes(
			attribute.String("step.name", step),
			attribute.String("step.kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, recording err when non-nil.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
