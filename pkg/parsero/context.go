package parsero

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context provides execution context to procedure bodies.
// It extends context.Context with the services a body needs: a logger
// enriched with run and step metadata, and the model set supplied at engine
// construction.
//
// Context is immutable after creation. The engine derives a context per step
// with the step name set and the logger enriched.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and step
	// context. Never returns nil; defaults to slog.Default().
	Logger() *slog.Logger

	// Models returns the model set supplied at engine construction.
	// Empty when the engine was built without models.
	Models() ModelSet

	// RunID returns the unique identifier for this run.
	// Auto-generated if not configured.
	RunID() string

	// StepName returns the procedure currently executing.
	// Empty before execution starts.
	StepName() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger   *slog.Logger
	models   ModelSet
	runID    string
	stepName string
}

// Logger returns the configured logger.
func (c *executionContext) Logger() *slog.Logger {
	return c.logger
}

// Models returns the model set.
func (c *executionContext) Models() ModelSet {
	return c.models
}

// RunID returns the run identifier.
func (c *executionContext) RunID() string {
	return c.runID
}

// StepName returns the current step name.
func (c *executionContext) StepName() string {
	return c.stepName
}

// newExecutionContext wraps a standard context with run-scoped services.
func newExecutionContext(ctx context.Context, logger *slog.Logger, models ModelSet, runID string) *executionContext {
	if logger == nil {
		logger = slog.Default()
	}
	if runID == "" {
		runID = uuid.New().String()
	}
	return &executionContext{
		Context: ctx,
		logger:  logger,
		models:  models,
		runID:   runID,
	}
}

// withStep returns a derived context with the step name set and the logger
// enriched for that step.
func (c *executionContext) withStep(name string) *executionContext {
	return &executionContext{
		Context:  c.Context,
		logger:   c.logger.With("run_id", c.runID, "step", name),
		models:   c.models,
		runID:    c.runID,
		stepName: name,
	}
}
