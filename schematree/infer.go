package schematree

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/mocktree"
)

// Infer builds a template tree from one or more sample documents written as
// JSON or YAML.
//
// Each sample is walked into a schema: mappings become objects whose keys
// are all required, sequences become arrays, and scalars keep their value as
// the template default. Array elements and samples are merged with union
// semantics, so a property is only required when every element or sample
// has it and integer elements mixed with floats widen to number. Null values
// carry no type and are left out of the tree. YAML anchors, aliases and
// merge keys are resolved.
//
// Errors wrap [ErrInvalidSample].
func Infer(label string, samples ...[]byte) (*mocktree.Node, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidSample)
	}

	var result *jsonschema.Schema

	for i, sample := range samples {
		s, err := inferSchema(sample)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}

		result = mergeSchemas(result, s)
	}

	n, err := Compile(label, result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSample, err)
	}

	return n, nil
}

// inferSchema walks the first document of a sample into a schema.
func inferSchema(sample []byte) (*jsonschema.Schema, error) {
	if isBlank(sample) {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSample)
	}

	file, err := parser.ParseBytes(sample, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSample, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSample)
	}

	if len(file.Docs) > 1 {
		slog.Debug("ignoring additional sample documents",
			slog.Int("documents", len(file.Docs)),
		)
	}

	body := file.Docs[0].Body
	w := &walker{anchors: buildAnchorMap(body)}

	return w.walkNode(body), nil
}

// walker infers schemas from a YAML AST.
type walker struct {
	anchors map[string]ast.Node
}

// walkNode recursively generates a schema from a YAML AST node.
func (w *walker) walkNode(node ast.Node) *jsonschema.Schema {
	node = unwrapNode(w.resolveAliases(node))

	switch n := node.(type) {
	case nil:
		return &jsonschema.Schema{}
	case *ast.MappingNode:
		return w.walkMapping(n.Values)
	case *ast.MappingValueNode:
		return w.walkMapping([]*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		return &jsonschema.Schema{
			Type:  typeArray,
			Items: w.walkItems(n),
		}
	}

	return w.walkScalar(node)
}

// walkMapping processes mapping values into an object schema.
func (w *walker) walkMapping(values []*ast.MappingValueNode) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	add := func(key string, child *jsonschema.Schema) {
		if _, exists := schema.Properties[key]; exists {
			return
		}

		schema.Properties[key] = child
		schema.PropertyOrder = append(schema.PropertyOrder, key)

		if schemaType(child) != "" && schemaType(child) != typeNull {
			schema.Required = append(schema.Required, key)
		}
	}

	for _, mvn := range values {
		if mvn.Key.IsMergeKey() {
			for _, merged := range w.mergeKeyValues(mvn.Value) {
				ms := w.walkMapping(merged)
				for _, k := range propertyKeys(ms) {
					add(k, ms.Properties[k])
				}
			}

			continue
		}

		key := keyName(mvn.Key)
		if key == "" {
			continue
		}

		add(key, w.walkNode(mvn.Value))
	}

	return schema
}

// mergeKeyValues returns the mappings referenced by a YAML merge key (<<).
func (w *walker) mergeKeyValues(node ast.Node) [][]*ast.MappingValueNode {
	node = unwrapNode(w.resolveAliases(node))

	if seq, ok := node.(*ast.SequenceNode); ok {
		var out [][]*ast.MappingValueNode

		for _, v := range seq.Values {
			if values := mappingValues(w.resolveAliases(v)); values != nil {
				out = append(out, values)
			}
		}

		return out
	}

	if values := mappingValues(node); values != nil {
		return [][]*ast.MappingValueNode{values}
	}

	return nil
}

// walkItems infers the items schema of a sequence. Mapping elements are
// merged with union semantics; other elements only contribute their widened
// type. Returns nil for empty sequences.
func (w *walker) walkItems(seq *ast.SequenceNode) *jsonschema.Schema {
	if len(seq.Values) == 0 {
		return nil
	}

	allMappings := true

	for _, val := range seq.Values {
		if mappingValues(w.resolveAliases(val)) == nil {
			allMappings = false

			break
		}
	}

	if allMappings {
		var result *jsonschema.Schema

		for _, val := range seq.Values {
			result = mergeSchemas(result, w.walkNode(val))
		}

		return result
	}

	var (
		result   *jsonschema.Schema
		conflict bool
	)

	for _, val := range seq.Values {
		s := w.walkNode(val)
		if result == nil {
			result = s

			continue
		}

		a, b := schemaType(result), schemaType(s)

		widened := widenType(a, b)
		if widened == "" && a != "" && b != "" {
			conflict = true
		}

		result = &jsonschema.Schema{
			Type:    widened,
			Default: result.Default,
		}
	}

	if conflict || schemaType(result) == "" {
		return nil
	}

	return result
}

// walkScalar generates a schema for a scalar value node, keeping the value
// as the schema's default.
func (w *walker) walkScalar(node ast.Node) *jsonschema.Schema {
	t := inferType(node)
	if t == "" {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{
		Type:    t,
		Default: defaultValue(node),
	}
}

// defaultValue encodes a scalar node's value as JSON. Returns nil if the
// value cannot be represented.
func defaultValue(node ast.Node) json.RawMessage {
	var v any

	err := yaml.NodeToValue(node, &v)
	if err != nil {
		return nil
	}

	b, err := mocktree.EncodeJSON(v)
	if err != nil {
		return nil
	}

	return b
}

// inferType returns the JSON Schema type string for the given YAML AST node.
// Returns an empty string for null/empty values (maximally permissive).
func inferType(node ast.Node) string {
	switch unwrapNode(node).(type) {
	case *ast.BoolNode:
		return typeBoolean
	case *ast.IntegerNode:
		return typeInteger
	case *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return typeNumber
	case *ast.StringNode, *ast.LiteralNode:
		return typeString
	case *ast.SequenceNode:
		return typeArray
	case *ast.MappingNode, *ast.MappingValueNode:
		return typeObject
	}

	return ""
}

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

// resolveAliases resolves alias nodes using the anchor map. Unresolvable
// aliases are treated as null.
func (w *walker) resolveAliases(node ast.Node) ast.Node {
	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	return w.anchors[alias.Value.String()]
}
