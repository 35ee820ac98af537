package schematree

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/mocktree"
)

// Sentinel errors.
var (
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrUnsupportedSchema = errors.New("unsupported schema")
	ErrInvalidSample     = errors.New("invalid sample")
	ErrInvalidOption     = errors.New("invalid option")
	ErrReadInput         = errors.New("read input")
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
	typeNull    = "null"
)

// maxExpansions bounds how many times one schema is expanded along a single
// path of the template, which unrolls recursive references.
const maxExpansions = 4

// compiler holds the state of one [Compile] call.
type compiler struct {
	root *jsonschema.Schema
	// expanding counts the expansions of each schema on the current path.
	expanding map[*jsonschema.Schema]int
}

// Compile converts a JSON Schema into a template tree.
//
// The root node is labelled label and is always required. Object properties
// become children in PropertyOrder, followed by the remaining properties
// sorted by name; a property is Required when it is listed in the parent's
// required keywords. An array's items schema becomes a single prototype child
// labelled item_0. Every node has [mocktree.StatusAdded]. Scalars carry the
// schema's default value, falling back to its const, its first enum value,
// and finally the zero value of the type.
//
// Local references (#, #/$defs/..., #/definitions/... and JSON pointers
// through properties and items) are followed. Recursive references are
// unrolled until a schema has been expanded four times on one path; the
// container at that depth has nil Children, so values nested below it are
// reported as incompatible. allOf branches are merged, and the first
// non-null anyOf or oneOf branch is used. Properties without a determinable
// type are skipped. Keys are made unique with [mocktree.UniqueKeys].
//
// Errors wrap [ErrInvalidSchema] or [ErrUnsupportedSchema].
func Compile(label string, s *jsonschema.Schema) (*mocktree.Node, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}

	c := &compiler{
		root:      s,
		expanding: make(map[*jsonschema.Schema]int),
	}

	n, err := c.compile(label, "", s, true)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, fmt.Errorf("%w: root schema has no type", ErrUnsupportedSchema)
	}

	return mocktree.UniqueKeys(n), nil
}

func (c *compiler) compile(label, prefix string, s *jsonschema.Schema, required bool) (*mocktree.Node, error) {
	target, err := c.deref(s)
	if err != nil {
		return nil, err
	}

	flat, err := c.flatten(target, make(map[*jsonschema.Schema]bool))
	if err != nil || flat == nil {
		return nil, err
	}

	typ, err := nodeType(flat)
	if err != nil || typ == "" {
		return nil, err
	}

	n := &mocktree.Node{
		Key:      mocktree.JoinKey(prefix, label),
		Label:    label,
		Type:     typ,
		Required: required,
		Status:   mocktree.StatusAdded,
	}

	if !typ.IsContainer() {
		n.RealValue, n.DisplayValue = scalarValue(flat, typ)

		return n, nil
	}

	if c.expanding[target] >= maxExpansions {
		return n, nil
	}

	c.expanding[target]++
	defer func() { c.expanding[target]-- }()

	n.Children = []*mocktree.Node{}

	switch typ {
	case mocktree.TypeObject:
		for _, k := range propertyKeys(flat) {
			child, err := c.compile(k, n.Key, flat.Properties[k], slices.Contains(flat.Required, k))
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}

			if child != nil {
				n.Children = append(n.Children, child)
			}
		}

	case mocktree.TypeArray:
		items := itemsSchema(flat)
		if items == nil {
			break
		}

		child, err := c.compile(mocktree.ItemLabel(0), n.Key, items, true)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}

		if child != nil {
			n.Children = append(n.Children, child)
			n.ChildrenType = child.Type
		}
	}

	return n, nil
}

// deref follows $ref chains to the referenced schema.
func (c *compiler) deref(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	var seen []string

	for s != nil && s.Ref != "" {
		if slices.Contains(seen, s.Ref) {
			return nil, fmt.Errorf("%w: reference cycle through %q", ErrInvalidSchema, s.Ref)
		}

		seen = append(seen, s.Ref)

		target, err := c.lookup(s.Ref)
		if err != nil {
			return nil, err
		}

		s = target
	}

	return s, nil
}

// flatten combines allOf, anyOf and oneOf into a single schema. It returns
// nil for schemas that can never hold a value. Schemas in seen are already
// being combined and contribute nothing.
func (c *compiler) flatten(s *jsonschema.Schema, seen map[*jsonschema.Schema]bool) (*jsonschema.Schema, error) {
	if s == nil || seen[s] || isFalseSchema(s) {
		return nil, nil //nolint:nilnil // No value can satisfy s.
	}

	if len(s.AllOf) == 0 && len(s.AnyOf) == 0 && len(s.OneOf) == 0 {
		return s, nil
	}

	seen[s] = true
	defer delete(seen, s)

	branch := func(b *jsonschema.Schema) (*jsonschema.Schema, error) {
		b, err := c.deref(b)
		if err != nil {
			return nil, err
		}

		return c.flatten(b, seen)
	}

	if len(s.AllOf) > 0 {
		merged := withoutCombinators(s)

		for _, b := range s.AllOf {
			flat, err := branch(b)
			if err != nil {
				return nil, err
			}

			merged = intersectSchemas(merged, flat)
		}

		return merged, nil
	}

	for _, b := range slices.Concat(s.AnyOf, s.OneOf) {
		flat, err := branch(b)
		if err != nil {
			return nil, err
		}

		if flat != nil && schemaType(flat) != typeNull {
			if t, err := nodeType(flat); err == nil && t != "" {
				return flat, nil
			}
		}
	}

	return withoutCombinators(s), nil
}

// lookup resolves a local reference against the root schema.
func (c *compiler) lookup(ref string) (*jsonschema.Schema, error) {
	pointer, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return nil, fmt.Errorf("%w: non-local reference %q", ErrUnsupportedSchema, ref)
	}

	s := c.root
	if pointer == "" {
		return s, nil
	}

	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i := range segments {
		segments[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(segments[i])
	}

	for i := 0; i < len(segments); i++ {
		if s == nil {
			break
		}

		switch segments[i] {
		case "items":
			s = s.Items

			continue

		case "$defs", "definitions", "properties":
			if i+1 >= len(segments) {
				return nil, fmt.Errorf("%w: incomplete reference %q", ErrInvalidSchema, ref)
			}

			var m map[string]*jsonschema.Schema

			switch segments[i] {
			case "$defs":
				m = s.Defs
			case "definitions":
				m = s.Definitions
			default:
				m = s.Properties
			}

			i++
			s = m[segments[i]]

		default:
			return nil, fmt.Errorf("%w: reference %q", ErrUnsupportedSchema, ref)
		}
	}

	if s == nil {
		return nil, fmt.Errorf("%w: unresolved reference %q", ErrInvalidSchema, ref)
	}

	return s, nil
}

// nodeType maps the schema's type to a node type. Untyped schemas are
// treated as objects when they declare properties and as arrays when they
// declare items; otherwise nodeType returns an empty type.
func nodeType(s *jsonschema.Schema) (mocktree.Type, error) {
	t := schemaType(s)

	switch t {
	case typeObject:
		return mocktree.TypeObject, nil
	case typeArray:
		return mocktree.TypeArray, nil
	case typeString:
		return mocktree.TypeString, nil
	case typeNumber:
		return mocktree.TypeNumber, nil
	case typeInteger:
		return mocktree.TypeInteger, nil
	case typeBoolean:
		return mocktree.TypeBoolean, nil
	case "", typeNull:
	default:
		return "", fmt.Errorf("%w: type %q", ErrUnsupportedSchema, t)
	}

	switch {
	case t == typeNull:
		return "", nil
	case s.Properties != nil:
		return mocktree.TypeObject, nil
	case itemsSchema(s) != nil:
		return mocktree.TypeArray, nil
	}

	return "", nil
}

// itemsSchema returns the schema describing an array's first element.
func itemsSchema(s *jsonschema.Schema) *jsonschema.Schema {
	switch {
	case s.Items != nil:
		return s.Items
	case len(s.PrefixItems) > 0:
		return s.PrefixItems[0]
	case len(s.ItemsArray) > 0:
		return s.ItemsArray[0]
	}

	return nil
}

// scalarValue returns the template value of a scalar schema.
func scalarValue(s *jsonschema.Schema, typ mocktree.Type) (any, string) {
	candidates := make([]any, 0, 2)

	if len(s.Default) > 0 {
		v, err := mocktree.ParseValue(string(s.Default), mocktree.FormatJSON)
		if err == nil {
			candidates = append(candidates, v)
		}
	}

	if s.Const != nil {
		candidates = append(candidates, *s.Const)
	}

	if len(s.Enum) > 0 {
		candidates = append(candidates, s.Enum[0])
	}

	candidates = append(candidates, zeroValue(typ))

	for _, v := range candidates {
		cls, ok := mocktree.Classify(v)
		if ok && cls.Type.Compatible(typ) {
			return cls.RealValue, cls.DisplayValue
		}
	}

	return nil, ""
}

func zeroValue(typ mocktree.Type) any {
	switch typ {
	case mocktree.TypeNumber, mocktree.TypeInteger:
		return int64(0)
	case mocktree.TypeBoolean:
		return false
	}

	return ""
}
