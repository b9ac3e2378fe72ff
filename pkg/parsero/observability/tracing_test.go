package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider with an in-memory span recorder.
// NewSpanManager must be called after this because it captures the global
// provider at construction.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestSpanManager_StartRunSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager("myapp", "1.0.0")

	t.Run("creates span with app-prefixed name and run id", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartRunSpan(ctx, "run-123")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "myapp.run", s.Name)

		var runID string
		for _, attr := range s.Attributes {
			if attr.Key == "run.id" {
				runID = attr.Value.AsString()
			}
		}
		assert.Equal(t, "run-123", runID)
	})

	t.Run("returns context carrying the span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		newCtx, span := sm.StartRunSpan(ctx, "run-456")

		assert.NotEqual(t, ctx, newCtx)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
	})
}

func TestSpanManager_StartStepSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager("myapp", "1.0.0")

	t.Run("creates span with step name suffix and kind", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartStepSpan(ctx, "classify", "action")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "myapp.step.classify", s.Name)

		var stepName, stepKind string
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "step.name":
				stepName = attr.Value.AsString()
			case "step.kind":
				stepKind = attr.Value.AsString()
			}
		}
		assert.Equal(t, "classify", stepName)
		assert.Equal(t, "action", stepKind)
	})

	t.Run("step spans parent under the run span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		ctx, runSpan := sm.StartRunSpan(ctx, "run-1")

		_, stepSpan := sm.StartStepSpan(ctx, "classify", "action")
		stepSpan.End()
		runSpan.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		var stepData *tracetest.SpanStub
		for i := range spans {
			if spans[i].Name == "myapp.step.classify" {
				stepData = &spans[i]
				break
			}
		}
		require.NotNil(t, stepData)
		assert.True(t, stepData.Parent.IsValid())
	})
}

func TestSpanManager_EndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager("myapp", "1.0.0")

	t.Run("sets OK status for nil error", func(t *testing.T) {
		_, span := sm.StartRunSpan(context.Background(), "run-1")

		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
		assert.Equal(t, "", spans[0].Status.Description)
	})

	t.Run("sets Error status and records the error", func(t *testing.T) {
		exporter.Reset()

		_, span := sm.StartRunSpan(context.Background(), "run-2")
		testErr := errors.New("something went wrong")

		sm.EndSpanWithError(span, testErr)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, codes.Error, s.Status.Code)
		assert.Equal(t, "something went wrong", s.Status.Description)

		found := false
		for _, event := range s.Events {
			if event.Name == "exception" {
				found = true
			}
		}
		assert.True(t, found, "Expected exception event")
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, errors.New("test"))
		})
	})
}
