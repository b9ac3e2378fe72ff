package parsero

import "strings"

// END is the terminal marker.
// An Action whose next step is END, or a Check returning END, completes the run.
const END = "__end__"

// Kind discriminates the two procedure variants.
type Kind int

const (
	// KindAction marks a procedure that may rewrite state and returns the
	// full new state.
	KindAction Kind = iota
	// KindCheck marks a read-only procedure that chooses the next step.
	KindCheck
)

// String returns the variant name.
func (k Kind) String() string {
	if k == KindCheck {
		return "check"
	}
	return "action"
}

// ActionFunc is the body of an Action procedure.
// It receives the current state and must return the complete new state
// (both sections, even if only one changed). The engine replaces the
// container's state with the returned value in full.
type ActionFunc func(ctx Context, state State) (State, error)

// CheckFunc is the body of a Check procedure.
// It receives a cloned, read-only view of the state and returns the name of
// the next step, END to complete the run, or "" to stop.
type CheckFunc func(ctx Context, state State) (string, error)

// Procedure is a named step in a step list: either an Action or a Check.
// Construct with NewAction or NewCheck; declare an Action's explicit next
// step with To.
type Procedure struct {
	name   string
	kind   Kind
	action ActionFunc
	check  CheckFunc
	next   string
}

// NewAction creates an Action procedure.
//
// Panics if:
//   - name is empty
//   - name is the terminal marker (case-insensitive "end" or "__end__")
//   - name contains whitespace
//   - fn is nil
func NewAction(name string, fn ActionFunc) Procedure {
	validateName(name)
	if fn == nil {
		panic("parsero: action function cannot be nil")
	}
	return Procedure{name: name, kind: KindAction, action: fn}
}

// NewCheck creates a Check procedure.
// Same name validation as NewAction.
func NewCheck(name string, fn CheckFunc) Procedure {
	validateName(name)
	if fn == nil {
		panic("parsero: check function cannot be nil")
	}
	return Procedure{name: name, kind: KindCheck, check: fn}
}

// To declares the explicit next step of an Action.
// Pass the name of another procedure, or END to complete the run after this
// Action. Panics if called on a Check: Checks choose their next step at
// runtime through their return value.
func (p Procedure) To(next string) Procedure {
	if p.kind == KindCheck {
		panic("parsero: only actions declare a next step")
	}
	p.next = next
	return p
}

// Name returns the procedure's identity within its step list.
func (p Procedure) Name() string { return p.name }

// Kind returns the procedure variant.
func (p Procedure) Kind() Kind { return p.kind }

// Next returns the Action's declared next step, "" when the procedure falls
// through to list order.
func (p Procedure) Next() string { return p.next }

func validateName(name string) {
	if name == "" {
		panic("parsero: procedure name cannot be empty")
	}
	lower := strings.ToLower(name)
	if lower == "end" || lower == END {
		panic("parsero: procedure name cannot be the terminal marker")
	}
	if strings.ContainsAny(name, " \t\n\r") {
		panic("parsero: procedure name cannot contain whitespace")
	}
}
