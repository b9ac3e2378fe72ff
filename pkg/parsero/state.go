package parsero

// State is the two-section value a run operates on. Each section is an
// open-ended mapping whose field set is fixed by the schema agreed before the
// run starts; values may be nil before being written.
//
// Actions receive the live state and must return the complete new state.
// Checks receive a clone, so mutations by a misbehaving Check never reach
// the container.
type State struct {
	Input  map[string]any
	Output map[string]any
}

// NewState returns a state with empty sections.
func NewState() State {
	return State{
		Input:  make(map[string]any),
		Output: make(map[string]any),
	}
}

// Clone returns a deep copy of the state. Nested mappings and arrays are
// copied; scalar leaves are shared (they are immutable values in Go).
func (s State) Clone() State {
	return State{
		Input:  cloneMap(s.Input),
		Output: cloneMap(s.Output),
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}
