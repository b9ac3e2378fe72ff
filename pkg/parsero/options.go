package parsero

import (
	"log/slog"

	"github.com/cloudwego/eino/components/model"

	"github.com/parsero-dev/parsero/pkg/parsero/schema"
)

// Info identifies the embedding application for tracing and metrics.
// It is supplied by the caller at construction; the engine embeds no
// process-wide name or version of its own.
type Info struct {
	Name    string
	Version string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithInfo sets the application identity used for spans and instruments.
func WithInfo(info Info) Option {
	return func(e *Engine) {
		if info.Name != "" {
			e.info = info
		}
	}
}

// WithModel supplies a single chat model to procedure bodies.
func WithModel(m model.BaseChatModel) Option {
	return func(e *Engine) {
		e.models = SingleModel(m)
	}
}

// WithModels supplies a name-keyed model mapping. Every procedure body
// receives the whole mapping and indexes into it by name at its own
// discretion.
func WithModels(m map[string]model.BaseChatModel) Option {
	return func(e *Engine) {
		e.models = NamedModels(m)
	}
}

// WithInputSchema sets the validator for the input section.
// Without one, input is accepted as-is and the input section starts empty.
func WithInputSchema(v schema.Validator) Option {
	return func(e *Engine) {
		e.in = v
	}
}

// WithOutputSchema sets the validator for the output section.
func WithOutputSchema(v schema.Validator) Option {
	return func(e *Engine) {
		e.out = v
	}
}

// WithLogger sets the logger used for run and step events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxIterations sets the dispatch ceiling per run. Default: 100.
// Pass 0 to disable the check entirely; the ceiling is the engine's only
// cycle-detection mechanism, so an unbounded cyclic step list will spin.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.maxIterations = n
	}
}

// WithTracing enables OpenTelemetry spans for runs and steps, using the
// global tracer provider and the identity from WithInfo.
func WithTracing(enabled bool) Option {
	return func(e *Engine) {
		e.tracing = enabled
	}
}

// WithMetrics enables OpenTelemetry metrics, using the global meter provider
// and the identity from WithInfo.
func WithMetrics(enabled bool) Option {
	return func(e *Engine) {
		e.metrics = enabled
	}
}

// runConfig holds per-run configuration.
type runConfig struct {
	runID string
}

// RunOption configures a single run.
type RunOption func(*runConfig)

// WithRunID sets the run identifier used in logs and spans.
// Auto-generated if not set.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}
