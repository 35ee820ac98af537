package mocktree

import (
	"fmt"
	"slices"
)

// Type is the structural kind of a [Node].
type Type string

// Node types. [TypeInteger] only arises from template declarations; values
// parsed at runtime are always classified as [TypeNumber].
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// IsContainer reports whether t is [TypeObject] or [TypeArray].
func (t Type) IsContainer() bool {
	return t == TypeObject || t == TypeArray
}

func (t Type) isNumeric() bool {
	return t == TypeNumber || t == TypeInteger
}

// Compatible reports whether a node of type t may stand in for a node of
// type other. Types are compatible when equal, or when one is
// [TypeInteger] and the other [TypeNumber].
func (t Type) Compatible(other Type) bool {
	return t == other || (t.isNumeric() && other.isNumeric())
}

// Status describes how a [Node] relates to the template it was reconciled
// against.
type Status string

const (
	// StatusDefault marks a node present and shape-consistent on both sides.
	StatusDefault Status = "default"
	// StatusAdded marks a node present only in the template.
	StatusAdded Status = "added"
	// StatusRemoved marks a node present only in the value.
	StatusRemoved Status = "removed"
)

// Node is an annotated tree node shared by templates, value trees, and
// reconciled trees.
//
// Nodes are treated as immutable once built. Every function in this package
// returns fresh nodes for anything it changes and may share untouched
// subtrees between its input and output, so callers must not mutate returned
// nodes.
//
// A nil Children slice means the children are absent (leaves, collapsed
// subtrees, or templates that declare no shape). A non-nil empty slice means
// the container is present and empty.
type Node struct {
	RealValue    any     `json:"realValue,omitempty"`
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	Type         Type    `json:"type"`
	ChildrenType Type    `json:"childrenType,omitempty"`
	Status       Status  `json:"status"`
	DisplayValue string  `json:"displayValue"`
	Children     []*Node `json:"children,omitempty"`
	Required     bool    `json:"isRequired"`
}

// clone returns a shallow copy of n. The children slice is shared.
func (n *Node) clone() *Node {
	c := *n

	return &c
}

// Walk calls fn for n and every descendant in depth-first pre-order. Walking
// stops descending into a subtree when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the descendant of n (or n itself) with the given key.
func (n *Node) Find(key string) *Node {
	var found *Node

	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}

		if c.Key == key {
			found = c

			return false
		}

		return true
	})

	return found
}

// String returns a short human-readable description of n.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s(%s, %s)", n.Key, n.Type, n.Status)
}

// JoinKey derives a node key from its parent's key and its own label.
func JoinKey(prefix, label string) string {
	if prefix == "" {
		return label
	}

	return prefix + "-" + label
}

// ItemLabel returns the synthetic label of the array element at index i.
func ItemLabel(i int) string {
	return fmt.Sprintf("item_%d", i)
}

// rekey returns n with its key set to key and every descendant's key
// re-derived from its label under the new key. n is returned unchanged when
// it already carries key.
func rekey(n *Node, key string) *Node {
	if n.Key == key {
		return n
	}

	out := n.clone()
	out.Key = key

	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = rekey(child, JoinKey(key, child.Label))
		}
	}

	return out
}

// uniqueKey returns key, or key with a "~N" suffix when key is already taken.
func uniqueKey(key string, taken map[string]bool) string {
	if !taken[key] {
		return key
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s~%d", key, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// UniqueKeys returns root with every key in the tree made unique. Keys are
// claimed in depth-first pre-order; a node whose key is already taken is
// given a "~N" suffix and its descendants are re-keyed under it. Subtrees
// whose keys need no change are shared with root.
func UniqueKeys(root *Node) *Node {
	if root == nil {
		return nil
	}

	return uniqueKeys(root, make(map[string]bool))
}

func uniqueKeys(n *Node, taken map[string]bool) *Node {
	out := n
	if taken[n.Key] {
		out = rekey(n, uniqueKey(n.Key, taken))
	}

	taken[out.Key] = true

	var children []*Node

	for i, child := range out.Children {
		c := uniqueKeys(child, taken)
		if c == child {
			continue
		}

		if children == nil {
			children = slices.Clone(out.Children)
		}

		children[i] = c
	}

	if children != nil {
		if out == n {
			out = n.clone()
		}

		out.Children = children
	}

	return out
}

// Keys returns every key in the tree rooted at n, in depth-first pre-order.
func (n *Node) Keys() []string {
	var keys []string

	n.Walk(func(c *Node) bool {
		keys = append(keys, c.Key)

		return true
	})

	return keys
}

// Depth returns the number of edges on the longest path from n to a leaf.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}

	depth := 0

	for _, child := range n.Children {
		if d := child.Depth() + 1; d > depth {
			depth = d
		}
	}

	return depth
}

