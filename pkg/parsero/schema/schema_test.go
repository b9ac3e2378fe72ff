package schema

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberSection() *Section {
	s := openapi3.NewObjectSchema().
		WithProperty("number", openapi3.NewFloat64Schema())
	s.Required = []string{"number"}
	return NewSection(s)
}

func resultSection() *Section {
	s := openapi3.NewObjectSchema().
		WithProperty("class", openapi3.NewStringSchema().WithEnum("odd", "even")).
		WithProperty("explanation", openapi3.NewStringSchema()).
		WithProperty("history", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	return NewSection(s)
}

// TestSection_Validate_OK tests a conforming value produces no issues.
func TestSection_Validate_OK(t *testing.T) {
	res := numberSection().Validate(map[string]any{"number": 11})

	assert.True(t, res.Valid())
	assert.Empty(t, res.Issues)
}

// TestSection_Validate_IntNormalized tests Go ints validate against number fields.
func TestSection_Validate_IntNormalized(t *testing.T) {
	res := numberSection().Validate(map[string]any{"number": int64(7)})

	assert.True(t, res.Valid())
}

// TestSection_Validate_MissingRequired tests a missing required field is reported.
func TestSection_Validate_MissingRequired(t *testing.T) {
	res := numberSection().Validate(map[string]any{})

	require.False(t, res.Valid())
	assert.NotEmpty(t, res.Issues[0].Message)
}

// TestSection_Validate_WrongType tests a type mismatch reports the field path.
func TestSection_Validate_WrongType(t *testing.T) {
	res := numberSection().Validate(map[string]any{"number": "eleven"})

	require.False(t, res.Valid())
	assert.Equal(t, "/number", res.Issues[0].Path)
}

// TestSection_Validate_EnumViolation tests enum fields reject other values.
func TestSection_Validate_EnumViolation(t *testing.T) {
	res := resultSection().Validate(map[string]any{
		"class":       "neither",
		"explanation": "x",
	})

	assert.False(t, res.Valid())
}

// TestSection_Fields tests declared field names are returned sorted.
func TestSection_Fields(t *testing.T) {
	assert.Equal(t, []string{"class", "explanation", "history"}, resultSection().Fields())
}

// TestSection_IsArray tests array-typed fields are identified.
func TestSection_IsArray(t *testing.T) {
	s := resultSection()

	assert.True(t, s.IsArray("history"))
	assert.False(t, s.IsArray("class"))
	assert.False(t, s.IsArray("missing"))
}
