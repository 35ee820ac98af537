package mocktree

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-yaml"
)

// Materialize rebuilds a value from a reconciled tree.
//
// Nodes with [StatusRemoved] are dropped and nodes with [StatusAdded] keep
// the template's default value, so the result of materializing a reconciled
// tree is a mock value shaped like the template. Objects are returned as
// [yaml.MapSlice] in tree order; collapsed containers materialize empty.
// Materialize returns nil for a nil or removed node.
func Materialize(n *Node) any {
	if n == nil || n.Status == StatusRemoved {
		return nil
	}

	switch n.Type {
	case TypeObject:
		obj := yaml.MapSlice{}

		for _, child := range n.Children {
			if child.Status == StatusRemoved {
				continue
			}

			obj = append(obj, yaml.MapItem{Key: child.Label, Value: Materialize(child)})
		}

		return obj

	case TypeArray:
		arr := []any{}

		for _, child := range n.Children {
			if child.Status == StatusRemoved {
				continue
			}

			arr = append(arr, Materialize(child))
		}

		return arr
	}

	return n.RealValue
}

// RepairPatch returns an RFC 7386 JSON merge patch that turns raw into the
// materialized form of the reconciled tree merged (see [Materialize]).
//
// Applying the patch to the stored mock produces a value compatible with the
// template. RepairPatch only computes the proposal; it does not modify raw.
// Errors wrap [ErrInvalidInput] when raw cannot be parsed, and [ErrEncode]
// when the patch cannot be produced (for example, when either side is a
// scalar).
func RepairPatch(raw string, merged *Node, format Format) ([]byte, error) {
	original, err := ParseValue(raw, format)
	if err != nil {
		return nil, err
	}

	originalJSON, err := EncodeJSON(original)
	if err != nil {
		return nil, err
	}

	repairedJSON, err := EncodeJSON(Materialize(merged))
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.CreateMergePatch(originalJSON, repairedJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: merge patch: %w", ErrEncode, err)
	}

	return patch, nil
}
