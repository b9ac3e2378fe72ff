package parsero

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/parsero-dev/parsero/pkg/parsero/observability"
)

// Run executes the step list against rawInput and returns the validated
// output section.
//
// Flow:
//  1. Validate rawInput against the input schema.
//  2. Walk the list from the first procedure: Actions rewrite the state and
//     resolve their next step (explicit name, END, or list order); Checks
//     read a cloned state and return the next step name, END, or "".
//  3. Validate and return the final output section.
//
// A next-step name that resolves to nothing terminates the run normally: the
// interpreter logs a warning and completes, it does not fail. Errors from
// procedure bodies propagate as-is, unwrapped; a body wanting resilience
// must recover internally.
func (e *Engine) Run(ctx context.Context, rawInput map[string]any, opts ...RunOption) (result map[string]any, runErr error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ec := newExecutionContext(ctx, e.logger, e.models, cfg.runID)
	runID := ec.RunID()

	startTime := time.Now()
	observability.LogRunStart(e.logger, runID)

	var tracingCtx context.Context = ec
	var runSpan trace.Span
	if e.tracing {
		tracingCtx, runSpan = e.spans.StartRunSpan(ec, runID)
		defer func() {
			e.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var stepCount int
	result, stepCount, runErr = e.interpret(tracingCtx, ec, rawInput)

	duration := time.Since(startTime)
	e.recorder.RecordRun(ec, runErr == nil, duration)

	if runErr != nil {
		lastStep := ""
		if maxErr, ok := runErr.(*MaxIterationsError); ok {
			lastStep = maxErr.LastStep
		}
		observability.LogRunError(e.logger, runID, runErr, float64(duration.Milliseconds()), lastStep)
		return nil, runErr
	}

	observability.LogRunComplete(e.logger, runID, float64(duration.Milliseconds()), stepCount)
	return result, nil
}

// interpret is the interpreter loop proper. It returns the validated output
// section and the number of dispatches performed.
func (e *Engine) interpret(tracingCtx context.Context, ec *executionContext, rawInput map[string]any) (map[string]any, int, error) {
	container := NewContainer(e.in, e.out)

	if res := container.ValidateInput(rawInput); !res.Valid() {
		return nil, 0, &ValidationError{Section: sectionInput, Issues: res.Issues}
	}
	container.SetInput(cloneMap(rawInput))

	current := 0
	iterations := 0
	stepCount := 0
	done := len(e.steps) == 0

	for !done {
		p := e.steps[current]

		if e.maxIterations > 0 && iterations >= e.maxIterations {
			return nil, stepCount, &MaxIterationsError{Max: e.maxIterations, LastStep: p.name}
		}
		iterations++

		stepCtx := ec.withStep(p.name)
		observability.LogStepStart(stepCtx.Logger(), p.name, p.kind.String())

		stepTracingCtx := tracingCtx
		var stepSpan trace.Span
		if e.tracing {
			stepTracingCtx, stepSpan = e.spans.StartStepSpan(tracingCtx, p.name, p.kind.String())
		}

		stepStart := time.Now()
		next, stepErr := e.dispatch(stepCtx, container, p, current)
		stepDuration := time.Since(stepStart)

		e.recorder.RecordStepExecution(stepTracingCtx, p.name, stepDuration, stepErr)
		if e.tracing {
			e.spans.EndSpanWithError(stepSpan, stepErr)
		}

		if stepErr != nil {
			observability.LogStepError(stepCtx.Logger(), p.name, stepErr)
			return nil, stepCount, stepErr
		}
		observability.LogStepComplete(stepCtx.Logger(), p.name, float64(stepDuration.Milliseconds()))
		stepCount++

		if next < 0 {
			done = true
		} else {
			current = next
		}
	}

	output := container.State().Output
	if res := container.ValidateOutput(output); !res.Valid() {
		return nil, stepCount, &ValidationError{Section: sectionOutput, Issues: res.Issues}
	}
	return output, stepCount, nil
}

// dispatch invokes one procedure and resolves the index of the next one.
// A negative index means the run is complete.
func (e *Engine) dispatch(ctx Context, container *Container, p Procedure, current int) (int, error) {
	switch p.kind {
	case KindCheck:
		// Checks get a cloned view: a mutation by a misbehaving body never
		// reaches the container.
		name, err := p.check(ctx, container.State().Clone())
		if err != nil {
			return 0, err
		}
		if name == "" || name == END {
			return -1, nil
		}
		idx, ok := e.index[name]
		if !ok {
			observability.LogUnknownNext(ctx.Logger(), p.name, name)
			return -1, nil
		}
		return idx, nil

	default:
		state, err := p.action(ctx, container.State())
		if err != nil {
			return 0, err
		}
		// The full pair is replaced even if only one section changed.
		container.SetInput(state.Input)
		container.SetOutput(state.Output)

		switch {
		case p.next == END:
			return -1, nil
		case p.next != "":
			idx, ok := e.index[p.next]
			if !ok {
				observability.LogUnknownNext(ctx.Logger(), p.name, p.next)
				return -1, nil
			}
			return idx, nil
		case current+1 < len(e.steps):
			return current + 1, nil
		default:
			return -1, nil
		}
	}
}
