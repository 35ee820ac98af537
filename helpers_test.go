package mocktree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
)

// templateNode returns a template node as a schema compiler would produce
// it: keyed under prefix and marked added.
func templateNode(prefix, label string, typ mocktree.Type, required bool, children ...*mocktree.Node) *mocktree.Node {
	n := &mocktree.Node{
		Key:      mocktree.JoinKey(prefix, label),
		Label:    label,
		Type:     typ,
		Required: required,
		Status:   mocktree.StatusAdded,
	}

	switch typ {
	case mocktree.TypeObject, mocktree.TypeArray:
		n.Children = []*mocktree.Node{}
		for _, child := range children {
			n.Children = append(n.Children, rekeyed(child, n.Key))
		}

		if typ == mocktree.TypeArray && len(children) > 0 {
			n.ChildrenType = children[0].Type
		}

	case mocktree.TypeString:
		n.RealValue, n.DisplayValue = "", ""
	case mocktree.TypeNumber, mocktree.TypeInteger:
		n.RealValue, n.DisplayValue = int64(0), "0"
	case mocktree.TypeBoolean:
		n.RealValue, n.DisplayValue = false, "false"
	}

	return n
}

// rekeyed re-derives the keys of a detached test subtree under prefix.
func rekeyed(n *mocktree.Node, prefix string) *mocktree.Node {
	out := *n
	out.Key = mocktree.JoinKey(prefix, n.Label)

	if n.Children != nil {
		out.Children = make([]*mocktree.Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = rekeyed(child, out.Key)
		}
	}

	return &out
}

// valueTree parses raw JSON and builds it the way reconciliation does.
func valueTree(t *testing.T, label, raw string) *mocktree.Node {
	t.Helper()

	v, err := mocktree.ParseValue(raw, mocktree.FormatJSON)
	require.NoError(t, err)

	n := mocktree.Build(label, v, mocktree.StatusRemoved, "")
	require.NotNil(t, n)

	return n
}

func ptr(s string) *string {
	return &s
}

// labels returns the labels of nodes.
func labels(nodes []*mocktree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}

	return out
}

// statuses returns the statuses of nodes.
func statuses(nodes []*mocktree.Node) []mocktree.Status {
	out := make([]mocktree.Status, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Status)
	}

	return out
}

// requireUniqueKeys fails the test when two nodes of the tree share a key.
func requireUniqueKeys(t *testing.T, root *mocktree.Node) {
	t.Helper()

	seen := make(map[string]bool)
	for _, key := range root.Keys() {
		require.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}
