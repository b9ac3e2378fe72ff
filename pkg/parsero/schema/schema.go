// Package schema checks state sections against their declared shape.
//
// The engine consumes validation through the small Validator interface; the
// concrete implementation wraps an OpenAPI object schema. Validation never
// panics or raises: it returns a Result, and the engine decides whether a
// failure aborts the run.
package schema

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is one field-path/message pair reported by the validator.
type Issue struct {
	// Path addresses the offending field, e.g. "/class". Empty when the
	// failure cannot be attributed to a single field.
	Path    string
	Message string
}

// Result is the tagged outcome of one validation.
type Result struct {
	Issues []Issue
}

// Valid reports whether the value matched the schema.
func (r Result) Valid() bool { return len(r.Issues) == 0 }

// Validator checks a raw section value and exposes the declared field set.
type Validator interface {
	// Validate checks the value against the section schema.
	Validate(value map[string]any) Result

	// Fields returns the declared top-level field names, sorted.
	Fields() []string

	// IsArray reports whether the named field is declared as an array.
	IsArray(field string) bool
}

// Section validates one state section against an OpenAPI object schema.
type Section struct {
	schema *openapi3.Schema
}

var _ Validator = (*Section)(nil)

// NewSection wraps an object schema describing a state section.
// Panics if s is nil.
func NewSection(s *openapi3.Schema) *Section {
	if s == nil {
		panic("schema: section schema cannot be nil")
	}
	return &Section{schema: s}
}

// Validate checks value against the section schema, collecting every
// violation rather than stopping at the first.
func (s *Section) Validate(value map[string]any) Result {
	err := s.schema.VisitJSON(normalize(value), openapi3.MultiErrors())
	if err == nil {
		return Result{}
	}

	var issues []Issue
	var multi openapi3.MultiError
	if ok := asMultiError(err, &multi); ok {
		for _, e := range multi {
			issues = append(issues, toIssue(e))
		}
	} else {
		issues = append(issues, toIssue(err))
	}
	return Result{Issues: issues}
}

// Fields returns the declared property names, sorted.
func (s *Section) Fields() []string {
	fields := make([]string, 0, len(s.schema.Properties))
	for name := range s.schema.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// IsArray reports whether the named property is declared with the array type.
func (s *Section) IsArray(field string) bool {
	ref, ok := s.schema.Properties[field]
	if !ok || ref == nil || ref.Value == nil {
		return false
	}
	return ref.Value.Type == openapi3.TypeArray
}

func toIssue(err error) Issue {
	if se, ok := err.(*openapi3.SchemaError); ok {
		path := ""
		if ptr := se.JSONPointer(); len(ptr) > 0 {
			path = "/" + strings.Join(ptr, "/")
		}
		msg := se.Reason
		if msg == "" {
			msg = se.Error()
		}
		return Issue{Path: path, Message: msg}
	}
	return Issue{Message: err.Error()}
}

func asMultiError(err error, target *openapi3.MultiError) bool {
	if multi, ok := err.(openapi3.MultiError); ok {
		*target = multi
		return true
	}
	return false
}

// normalize rewrites typed Go values into the generic JSON shape the
// validator expects. Numeric fields in particular may arrive as int from Go
// callers rather than float64 from a JSON decoder.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalize(e)
		}
		return out
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}
