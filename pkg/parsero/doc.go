/*
Package parsero executes named step lists ("procedures") over a typed
two-section state, either by direct interpretation or by compiling the list
for an external graph engine. Both execution paths share one set of
validation rules, one termination policy, and one flat-state codec, so a
step list routes identically no matter which path runs it.

# Procedures

A procedure is either an Action or a Check. Actions may rewrite the state
and return the complete new value; they may declare an explicit next step or
the terminal marker END. Checks read a cloned state and return the next step
name, END, or "" to stop:

	classify := parsero.NewAction("classify", func(ctx parsero.Context, s parsero.State) (parsero.State, error) {
	    s.Output["class"] = "even"
	    return s, nil
	}).To("router")

	router := parsero.NewCheck("router", func(ctx parsero.Context, s parsero.State) (string, error) {
	    if s.Output["class"] == "odd" {
	        return "isOdd", nil
	    }
	    return "isEven", nil
	})

Without an explicit next step, an Action falls through to the procedure that
follows it in list order. Once the list contains a Check, list order stops
being a reliable continuation, so every Action must declare its next step;
New reports a ChainError otherwise. Procedure names must be unique; New
reports a DuplicateNameError listing every offender.

# Running

New validates the list once; Run validates the input, walks the list, and
returns the validated output:

	engine, err := parsero.New([]parsero.Procedure{classify, router, isOdd, isEven},
	    parsero.WithInputSchema(in),
	    parsero.WithOutputSchema(out),
	    parsero.WithModel(chatModel))
	if err != nil {
	    log.Fatal(err)
	}

	output, err := engine.Run(ctx, map[string]any{"number": 11})

Cyclic lists are bounded by an iteration ceiling (default 100, configurable
with WithMaxIterations; 0 disables it). A next-step name that resolves to
nothing terminates the run normally with a logged warning rather than
failing, so watch the logs for typos in declared next steps.

Errors from procedure bodies (a failing model call, for example) propagate
as-is: the engine neither wraps nor retries them.

# Graph compilation

Graph hands the same step list to the external graph engine: one node per
Action, static edges between Actions, and branches that run Check bodies
over the decoded flat state. State crosses the boundary in a flat,
path-prefixed encoding (Flatten/Unflatten):

	compiled, err := engine.Graph(ctx)
	if err != nil {
	    log.Fatal(err)
	}
	for _, w := range compiled.Warnings() {
	    log.Println(w)
	}
	flat, err := compiled.Invoke(ctx, parsero.Flatten(initial))

# Concurrency

An Engine is immutable after New and safe for concurrent Run calls; each run
owns its own state container. A Container must never be shared across runs:
Actions mutate it by reference with no locking.

# Subpackages

  - schema: section validators over OpenAPI schemas
  - observability: slog run/step logging, OTel spans and metrics
  - config: file-driven engine options
  - llm: OpenAI-compatible chat model construction
  - registry: generic keyed registry backing model sets
*/
package parsero
