package schematree

import (
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// mergeSchemas merges two schemas using union semantics, as needed when
// several samples describe the same value. Properties from both schemas are
// included, conflicting types are widened, and only properties required by
// both stay required.
func mergeSchemas(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	result := &jsonschema.Schema{
		Type:     widenType(schemaType(a), schemaType(b)),
		Required: intersectStrings(a.Required, b.Required),
	}

	if a.Default != nil {
		result.Default = a.Default
	} else {
		result.Default = b.Default
	}

	if a.Properties != nil || b.Properties != nil {
		mergeProperties(result, a, b, mergeSchemas)
	}

	switch {
	case a.Items != nil && b.Items != nil:
		result.Items = mergeSchemas(a.Items, b.Items)
	case a.Items != nil:
		result.Items = a.Items
	default:
		result.Items = b.Items
	}

	return result
}

// intersectSchemas combines two schemas that must both hold, as allOf
// branches do. Properties are combined, every required property stays
// required, and the first declared type wins.
func intersectSchemas(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	result := &jsonschema.Schema{
		Type:     firstNonEmpty(schemaType(a), schemaType(b)),
		Required: unionStrings(a.Required, b.Required),
		Default:  a.Default,
		Const:    a.Const,
		Enum:     a.Enum,
	}

	if result.Default == nil {
		result.Default = b.Default
	}

	if result.Const == nil {
		result.Const = b.Const
	}

	if result.Enum == nil {
		result.Enum = b.Enum
	}

	if a.Properties != nil || b.Properties != nil {
		mergeProperties(result, a, b, intersectSchemas)
	}

	result.Items = intersectSchemas(a.Items, b.Items)

	return result
}

// withoutCombinators returns a shallow copy of s without its allOf, anyOf
// and oneOf keywords.
func withoutCombinators(s *jsonschema.Schema) *jsonschema.Schema {
	out := *s
	out.AllOf, out.AnyOf, out.OneOf = nil, nil, nil

	return &out
}

// schemaType returns the effective type string from a schema: Type, or the
// first non-null entry of Types.
func schemaType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}

	for _, t := range s.Types {
		if t != typeNull {
			return t
		}
	}

	if slices.Contains(s.Types, typeNull) {
		return typeNull
	}

	return ""
}

// widenType returns the widened type when merging two type strings.
// Returns empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	// Null/empty merges transparently.
	if a == "" || a == typeNull {
		return b
	}

	if b == "" || b == typeNull {
		return a
	}

	// Integer + number -> number.
	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// isTrueSchema checks if a schema is the "true" schema (validates everything).
func isTrueSchema(s *jsonschema.Schema) bool {
	if s == nil {
		return false
	}

	return s.Not == nil &&
		s.Ref == "" &&
		s.Type == "" &&
		len(s.Types) == 0 &&
		s.Properties == nil &&
		s.Items == nil &&
		len(s.AllOf) == 0 &&
		len(s.AnyOf) == 0 &&
		len(s.OneOf) == 0
}

// isFalseSchema checks if a schema is the "false" schema (validates nothing).
func isFalseSchema(s *jsonschema.Schema) bool {
	return s.Not != nil && isTrueSchema(s.Not)
}

// intersectStrings returns the strings present in both a and b, in the
// order of b.
func intersectStrings(a, b []string) []string {
	if a == nil || b == nil {
		return nil
	}

	var result []string

	for _, s := range b {
		if slices.Contains(a, s) {
			result = append(result, s)
		}
	}

	return result
}

// unionStrings returns a followed by the strings of b missing from a.
func unionStrings(a, b []string) []string {
	result := slices.Clone(a)

	for _, s := range b {
		if !slices.Contains(result, s) {
			result = append(result, s)
		}
	}

	return result
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}

	return b
}

// propertyKeys returns property keys in PropertyOrder, then any remaining
// keys sorted by name.
func propertyKeys(s *jsonschema.Schema) []string {
	if s.Properties == nil {
		return nil
	}

	keys := make([]string, 0, len(s.Properties))

	for _, k := range s.PropertyOrder {
		if _, ok := s.Properties[k]; ok && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	var rest []string

	for k := range s.Properties {
		if !slices.Contains(keys, k) {
			rest = append(rest, k)
		}
	}

	slices.Sort(rest)

	return append(keys, rest...)
}

// mergeProperties combines the properties of a and b into result, merging
// properties present on both sides with combine.
func mergeProperties(result, a, b *jsonschema.Schema, combine func(a, b *jsonschema.Schema) *jsonschema.Schema) {
	result.Properties = make(map[string]*jsonschema.Schema)

	var order []string

	for _, k := range propertyKeys(a) {
		result.Properties[k] = a.Properties[k]
		order = append(order, k)
	}

	for _, k := range propertyKeys(b) {
		if existing, ok := result.Properties[k]; ok {
			result.Properties[k] = combine(existing, b.Properties[k])
		} else {
			result.Properties[k] = b.Properties[k]
			order = append(order, k)
		}
	}

	result.PropertyOrder = order
}
