package parsero

import "strings"

// The flat encoding used at the external engine boundary: every leaf of the
// two-section state is addressed by a section-prefixed, underscore-joined
// path. Arrays and nils are leaves and are carried verbatim, never
// decomposed. Empty mappings are also carried verbatim, so they survive the
// round trip.
//
// Flatten and Unflatten are mutual inverses for any state made of scalars,
// arrays, and nested mappings, provided field names do not contain the path
// separator and no scalar path collides with a mapping path. On a collision
// the later write wins: a mapping overwrites a previously stored scalar.

const (
	sectionInput  = "input"
	sectionOutput = "output"
	pathSeparator = "_"
)

// Flatten encodes a state into the flat key-addressable form.
func Flatten(s State) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, sectionInput, s.Input)
	flattenInto(flat, sectionOutput, s.Output)
	return flat
}

func flattenInto(flat map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := prefix + pathSeparator + k
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(flat, key, nested)
			continue
		}
		flat[key] = v
	}
}

// Unflatten decodes a flat mapping back into the two-section state.
// Keys without a section prefix are ignored.
func Unflatten(flat map[string]any) State {
	s := NewState()
	for k, v := range flat {
		switch {
		case strings.HasPrefix(k, sectionInput+pathSeparator):
			assignPath(s.Input, strings.TrimPrefix(k, sectionInput+pathSeparator), v)
		case strings.HasPrefix(k, sectionOutput+pathSeparator):
			assignPath(s.Output, strings.TrimPrefix(k, sectionOutput+pathSeparator), v)
		}
	}
	return s
}

// assignPath walks or creates intermediate mappings for every path segment
// except the last, which receives the value.
func assignPath(dst map[string]any, path string, v any) {
	segments := strings.Split(path, pathSeparator)
	for _, seg := range segments[:len(segments)-1] {
		child, ok := dst[seg].(map[string]any)
		if !ok {
			// Later write wins: replace whatever was stored here with a mapping.
			child = make(map[string]any)
			dst[seg] = child
		}
		dst = child
	}
	dst[segments[len(segments)-1]] = v
}
