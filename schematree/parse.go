package schematree

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/mocktree"
)

// Parse decodes a JSON Schema document with [Decode] and compiles it with
// [Compile].
func Parse(label string, data []byte) (*mocktree.Node, error) {
	s, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return Compile(label, s)
}

// Decode decodes a JSON Schema document written as JSON or YAML.
//
// Unless a schema already has a PropertyOrder, its properties are ordered as
// they appear in the document. Errors wrap [ErrInvalidSchema].
func Decode(data []byte) (*jsonschema.Schema, error) {
	if isBlank(data) {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	var s jsonschema.Schema

	err = yaml.UnmarshalWithOptions(data, &s, yaml.UseJSONUnmarshaler())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	if len(file.Docs) > 0 {
		applyOrder(file.Docs[0].Body, &s)
	}

	return &s, nil
}

// applyOrder records the document order of properties on s and every
// subschema reachable through properties, definitions, items and
// combinators.
func applyOrder(node ast.Node, s *jsonschema.Schema) {
	if s == nil {
		return
	}

	for _, mvn := range mappingValues(node) {
		switch keyName(mvn.Key) {
		case "properties":
			props := mappingValues(mvn.Value)

			if len(s.PropertyOrder) == 0 {
				for _, p := range props {
					s.PropertyOrder = append(s.PropertyOrder, keyName(p.Key))
				}
			}

			applyOrderMap(props, s.Properties)

		case "$defs":
			applyOrderMap(mappingValues(mvn.Value), s.Defs)

		case "definitions":
			applyOrderMap(mappingValues(mvn.Value), s.Definitions)

		case "items":
			if seq, ok := unwrapNode(mvn.Value).(*ast.SequenceNode); ok {
				applyOrderSlice(seq, s.ItemsArray)
			} else {
				applyOrder(mvn.Value, s.Items)
			}

		case "prefixItems":
			applyOrderSlice(mvn.Value, s.PrefixItems)
		case "allOf":
			applyOrderSlice(mvn.Value, s.AllOf)
		case "anyOf":
			applyOrderSlice(mvn.Value, s.AnyOf)
		case "oneOf":
			applyOrderSlice(mvn.Value, s.OneOf)
		}
	}
}

func applyOrderMap(values []*ast.MappingValueNode, schemas map[string]*jsonschema.Schema) {
	for _, mvn := range values {
		applyOrder(mvn.Value, schemas[keyName(mvn.Key)])
	}
}

func applyOrderSlice(node ast.Node, schemas []*jsonschema.Schema) {
	seq, ok := unwrapNode(node).(*ast.SequenceNode)
	if !ok {
		return
	}

	for i, v := range seq.Values {
		if i < len(schemas) {
			applyOrder(v, schemas[i])
		}
	}
}

// mappingValues returns the key-value pairs of a mapping node.
func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch n := unwrapNode(node).(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	}

	return nil
}

// keyName returns the unquoted name of a mapping key.
func keyName(key ast.MapKeyNode) string {
	if s, ok := unwrapNode(key).(*ast.StringNode); ok {
		return s.Value
	}

	return key.String()
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// isBlank returns true if the byte slice contains only whitespace.
func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
