package parsero

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	"github.com/parsero-dev/parsero/pkg/parsero/observability"
)

// FlatField describes one key of the flat-state schema handed to the
// external graph engine.
type FlatField struct {
	// Key is the section-prefixed flat key, e.g. "output_class".
	Key string
	// Append marks array-typed fields for an append-reducing merge strategy;
	// all other fields use plain overwrite.
	Append bool
}

// CompiledGraph is the handle for one compilation of the step list. It is
// read-only after construction; Graph builds a fresh one per call.
//
// The graph reproduces the interpreter's semantics exactly: one node per
// Action (decode flat state, invoke, re-encode), static edges between
// Actions, and branches whose resolver runs Check bodies over the decoded
// state. A next-step name that resolves to nothing routes to the engine's
// end marker, matching the interpreter's silent-termination policy.
type CompiledGraph struct {
	runnable     compose.Runnable[map[string]any, map[string]any]
	schema       []FlatField
	entry        string
	nodes        []string
	defaultModel string
	warnings     []string
}

// Invoke runs the compiled graph on a flat-encoded state and returns the
// final flat state. Execution authority belongs entirely to the external
// engine; this is a thin pass-through.
func (cg *CompiledGraph) Invoke(ctx context.Context, flat map[string]any) (map[string]any, error) {
	ctx = context.WithValue(ctx, runIDKey{}, uuid.New().String())
	return cg.runnable.Invoke(ctx, flat)
}

// FlatSchema returns the declared flat-state schema, with array-typed fields
// marked for append merging.
func (cg *CompiledGraph) FlatSchema() []FlatField {
	return cg.schema
}

// Entry returns the node the start marker points at.
func (cg *CompiledGraph) Entry() string {
	return cg.entry
}

// Nodes returns the Action node names in declaration order.
// Checks are not nodes; they live inside branch resolvers.
func (cg *CompiledGraph) Nodes() []string {
	return cg.nodes
}

// DefaultModel returns the name of the model chosen for the external engine,
// or "" when the engine was built without models.
func (cg *CompiledGraph) DefaultModel() string {
	return cg.defaultModel
}

// Warnings returns the diagnostics gathered during compilation, such as an
// ambiguous default-model selection. They are returned rather than logged so
// callers decide how to surface them.
func (cg *CompiledGraph) Warnings() []string {
	return cg.warnings
}

// runIDKey carries a run identifier through the external engine's context.
type runIDKey struct{}

// nodeKey maps a step name onto the engine's node-key namespace. The engine
// reserves "start" and "end" as node keys, both of which are legal step
// names, so user names are never used verbatim.
func nodeKey(name string) string {
	return "proc:" + name
}

// Graph compiles the validated step list for the external graph engine and
// returns a fresh handle. The compiler only builds descriptors; no procedure
// body executes during compilation.
//
// The external engine requires a reachable end node, so a list whose routing
// never reaches a terminal marker (two Actions pointing at each other, for
// example) fails compilation here. The interpreter accepts such a list and
// stops it at the iteration ceiling instead; this is the one case where the
// two paths diverge.
func (e *Engine) Graph(ctx context.Context) (*CompiledGraph, error) {
	if len(e.steps) == 0 {
		return nil, fmt.Errorf("cannot compile an empty step list")
	}

	cg := &CompiledGraph{
		schema: e.flatSchema(),
	}

	_, name, warning := e.models.Default()
	cg.defaultModel = name
	if warning != "" {
		cg.warnings = append(cg.warnings, warning)
	}

	g := compose.NewGraph[map[string]any, map[string]any]()

	// One node per Action.
	for _, p := range e.steps {
		if p.kind != KindAction {
			continue
		}
		if err := g.AddLambdaNode(nodeKey(p.name), compose.InvokableLambda(e.actionNode(p))); err != nil {
			return nil, fmt.Errorf("add node %s: %w", p.name, err)
		}
		cg.nodes = append(cg.nodes, p.name)
	}

	// Initial edge from the start marker to the first procedure.
	first := e.steps[0]
	cg.entry = first.name
	if err := e.connect(g, compose.START, first); err != nil {
		return nil, err
	}

	// Outgoing edges per Action.
	for i, p := range e.steps {
		if p.kind != KindAction {
			continue
		}
		if err := e.connectNext(g, p, i); err != nil {
			return nil, err
		}
	}

	opts := []compose.GraphCompileOption{}
	if e.maxIterations > 0 {
		opts = append(opts, compose.WithMaxRunSteps(e.maxIterations))
	}
	runnable, err := g.Compile(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile graph: %w", err)
	}
	cg.runnable = runnable
	return cg, nil
}

// connectNext wires the edge leaving Action p, mirroring the interpreter's
// next-step resolution.
func (e *Engine) connectNext(g *compose.Graph[map[string]any, map[string]any], p Procedure, i int) error {
	from := nodeKey(p.name)
	switch {
	case p.next == END:
		return g.AddEdge(from, compose.END)
	case p.next != "":
		target, ok := e.lookup(p.next)
		if !ok {
			// Unknown name terminates silently, same as the interpreter.
			return g.AddEdge(from, compose.END)
		}
		return e.connect(g, from, target)
	case i+1 < len(e.steps):
		return e.connect(g, from, e.steps[i+1])
	default:
		return g.AddEdge(from, compose.END)
	}
}

// connect wires from (an engine node key or the start marker) to a
// procedure: a static edge when the target is an Action, a branch when it is
// a Check.
func (e *Engine) connect(g *compose.Graph[map[string]any, map[string]any], from string, target Procedure) error {
	if target.kind == KindAction {
		return g.AddEdge(from, nodeKey(target.name))
	}
	return g.AddBranch(from, e.checkBranch(target))
}

// actionNode wraps an Action body as an external-engine node: decode the
// flat state, invoke, re-encode the returned state.
func (e *Engine) actionNode(p Procedure) func(ctx context.Context, flat map[string]any) (map[string]any, error) {
	return func(ctx context.Context, flat map[string]any) (map[string]any, error) {
		ec := e.graphContext(ctx).withStep(p.name)
		state, err := p.action(ec, Unflatten(flat))
		if err != nil {
			return nil, err
		}
		return Flatten(state), nil
	}
}

// checkBranch builds a conditional edge whose resolver runs the Check body
// (and any Checks it chains to) over the decoded state, returning the chosen
// Action node or the end marker.
func (e *Engine) checkBranch(check Procedure) *compose.GraphBranch {
	ends := make(map[string]bool, len(e.steps)+1)
	for _, p := range e.steps {
		if p.kind == KindAction {
			ends[nodeKey(p.name)] = true
		}
	}
	ends[compose.END] = true

	condition := func(ctx context.Context, flat map[string]any) (string, error) {
		state := Unflatten(flat)
		cur := check
		// A Check may name another Check; resolve the chain inline so routing
		// matches the interpreter. The hop bound guards against Check cycles.
		for hops := 0; hops <= len(e.steps); hops++ {
			ec := e.graphContext(ctx).withStep(cur.name)
			name, err := cur.check(ec, state.Clone())
			if err != nil {
				return "", err
			}
			if name == "" || name == END {
				return compose.END, nil
			}
			target, ok := e.lookup(name)
			if !ok {
				observability.LogUnknownNext(ec.Logger(), cur.name, name)
				return compose.END, nil
			}
			if target.kind == KindAction {
				return nodeKey(target.name), nil
			}
			cur = target
		}
		return "", &MaxIterationsError{Max: len(e.steps), LastStep: cur.name}
	}

	return compose.NewGraphBranch(condition, ends)
}

// graphContext rebuilds a procedure Context from the bare context the
// external engine hands to node bodies.
func (e *Engine) graphContext(ctx context.Context) *executionContext {
	runID, _ := ctx.Value(runIDKey{}).(string)
	return newExecutionContext(ctx, e.logger, e.models, runID)
}

// flatSchema derives the declared flat-state schema from the section field
// sets.
func (e *Engine) flatSchema() []FlatField {
	var fields []FlatField
	if e.in != nil {
		for _, f := range e.in.Fields() {
			fields = append(fields, FlatField{
				Key:    sectionInput + pathSeparator + f,
				Append: e.in.IsArray(f),
			})
		}
	}
	if e.out != nil {
		for _, f := range e.out.Fields() {
			fields = append(fields, FlatField{
				Key:    sectionOutput + pathSeparator + f,
				Append: e.out.IsArray(f),
			})
		}
	}
	return fields
}
