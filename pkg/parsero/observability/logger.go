// Package observability provides structured logging, metrics, and tracing
// helpers for run execution.
//
// Logging uses slog from the standard library; metrics and tracing use
// OpenTelemetry. Everything is opt-in and has a no-op implementation when
// disabled. Tracer and meter identity comes from the application name and
// version the caller supplies at construction; this package holds no
// process-wide metadata of its own.
package observability

import "log/slog"

// LogRunStart logs the start of a run.
func LogRunStart(logger *slog.Logger, runID string) {
	if logger == nil {
		return
	}
	logger.Info("run starting",
		slog.String("run_id", runID),
	)
}

// LogRunComplete logs successful run completion.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, stepCount int) {
	if logger == nil {
		return
	}
	logger.Info("run completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps_executed", stepCount),
	)
}

// LogRunError logs run failure.
func LogRunError(logger *slog.Logger, runID string, err error, durationMs float64, lastStep string) {
	if logger == nil {
		return
	}
	logger.Error("run failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_step", lastStep),
	)
}

// LogStepStart logs step dispatch.
func LogStepStart(logger *slog.Logger, step, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("step starting",
		slog.String("step", step),
		slog.String("kind", kind),
	)
}

// LogStepComplete logs successful step completion.
func LogStepComplete(logger *slog.Logger, step string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("step completed",
		slog.String("step", step),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStepError logs step failure.
func LogStepError(logger *slog.Logger, step string, err error) {
	if logger == nil {
		return
	}
	logger.Error("step failed",
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

// LogUnknownNext logs the silent-termination path: a declared or returned
// next-step name that resolves to nothing. The run completes normally, so
// this warning is the only trace of a possible typo.
func LogUnknownNext(logger *slog.Logger, step, next string) {
	if logger == nil {
		return
	}
	logger.Warn("next step not found; completing run",
		slog.String("step", step),
		slog.String("next", next),
	)
}
