package parsero

import (
	"log/slog"

	"github.com/parsero-dev/parsero/pkg/parsero/observability"
	"github.com/parsero-dev/parsero/pkg/parsero/schema"
)

// DefaultMaxIterations is the dispatch ceiling applied when no
// WithMaxIterations option is given.
const DefaultMaxIterations = 100

// Engine validates a step list once and then executes it: Run walks the list
// with the interpreter, Graph compiles the same list for the external graph
// engine. Both paths share the validation rules, the termination rules, and
// the flat-state codec, so they route identically.
//
// An Engine is immutable after New and safe for concurrent Run calls; each
// run owns its own state container.
type Engine struct {
	steps []Procedure
	index map[string]int

	models        ModelSet
	in            schema.Validator
	out           schema.Validator
	info          Info
	logger        *slog.Logger
	maxIterations int
	tracing       bool
	metrics       bool

	spans    observability.SpanManager
	recorder observability.MetricsRecorder
}

// New builds an engine for the given step list.
//
// The list is validated before anything executes:
//   - procedure names must be unique (DuplicateNameError lists every
//     offender);
//   - once the list contains a Check, every Action must declare an explicit
//     next step (ChainError lists the Actions that rely on list order).
//
// Both failures are reported together when both apply.
func New(steps []Procedure, opts ...Option) (*Engine, error) {
	e := &Engine{
		steps:         steps,
		info:          Info{Name: "parsero"},
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := validateSteps(steps); err != nil {
		return nil, err
	}

	e.index = make(map[string]int, len(steps))
	for i, p := range steps {
		e.index[p.name] = i
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	e.spans = observability.NoopSpanManager{}
	if e.tracing {
		e.spans = observability.NewSpanManager(e.info.Name, e.info.Version)
	}

	e.recorder = observability.NoopMetrics{}
	if e.metrics {
		recorder, err := observability.NewMetricsRecorder(e.info.Name, e.info.Version)
		if err != nil {
			return nil, err
		}
		e.recorder = recorder
	}

	return e, nil
}

// Steps returns the procedure names in declaration order.
func (e *Engine) Steps() []string {
	names := make([]string, len(e.steps))
	for i, p := range e.steps {
		names[i] = p.name
	}
	return names
}

// lookup resolves a step name through the table built at construction.
func (e *Engine) lookup(name string) (Procedure, bool) {
	i, ok := e.index[name]
	if !ok {
		return Procedure{}, false
	}
	return e.steps[i], true
}
