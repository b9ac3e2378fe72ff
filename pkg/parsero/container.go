package parsero

import "github.com/parsero-dev/parsero/pkg/parsero/schema"

// Container owns the current state for one in-flight run.
//
// A Container is exclusively owned by that run: Actions mutate it by
// reference with no locking, so sharing one Container across concurrent runs
// is not safe. Shape checking is delegated to the section validators; the
// setters perform no checks of their own.
type Container struct {
	state State
	in    schema.Validator
	out   schema.Validator
}

// NewContainer creates a container with every declared field of each section
// initialized to nil. Validators may be nil, in which case the section starts
// empty and Validate* always succeeds.
func NewContainer(in, out schema.Validator) *Container {
	c := &Container{
		state: NewState(),
		in:    in,
		out:   out,
	}
	if in != nil {
		for _, f := range in.Fields() {
			c.state.Input[f] = nil
		}
	}
	if out != nil {
		for _, f := range out.Fields() {
			c.state.Output[f] = nil
		}
	}
	return c
}

// State returns the current state by reference. Procedures and callers are
// expected to read and mutate through this reference; the container does not
// defensively copy.
func (c *Container) State() State {
	return c.state
}

// SetInput unconditionally replaces the input section in full.
func (c *Container) SetInput(v map[string]any) {
	c.state.Input = v
}

// SetOutput unconditionally replaces the output section in full.
func (c *Container) SetOutput(v map[string]any) {
	c.state.Output = v
}

// ValidateInput checks a raw value against the input schema.
// It never raises; turning a failed Result into an error is the engine's job.
func (c *Container) ValidateInput(raw map[string]any) schema.Result {
	if c.in == nil {
		return schema.Result{}
	}
	return c.in.Validate(raw)
}

// ValidateOutput checks a raw value against the output schema.
func (c *Container) ValidateOutput(raw map[string]any) schema.Result {
	if c.out == nil {
		return schema.Result{}
	}
	return c.out.Validate(raw)
}
