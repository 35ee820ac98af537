package mocktree

// Build turns a parsed value into a [Node] tree.
//
// Every node is given the status s and Required false. The root key is
// [JoinKey](keyPrefix, label) and each child is keyed under its parent's key.
// Object members are visited in their natural order, skipping empty member
// names; array elements are labeled with [ItemLabel]. Values that
// [Classify] rejects (including nil) produce no node, so Build returns nil
// for them and skips them as children.
//
// Containers always receive a non-nil children slice, even when empty.
// Labels that contain "-" can derive the same key as a nested member; such
// keys are made unique with [UniqueKeys].
func Build(label string, v any, s Status, keyPrefix string) *Node {
	n := build(label, v, s, keyPrefix)
	if n == nil {
		return nil
	}

	return UniqueKeys(n)
}

func build(label string, v any, s Status, keyPrefix string) *Node {
	c, ok := Classify(v)
	if !ok {
		return nil
	}

	n := &Node{
		Key:          JoinKey(keyPrefix, label),
		Label:        label,
		Type:         c.Type,
		ChildrenType: c.ChildrenType,
		Status:       s,
		RealValue:    c.RealValue,
		DisplayValue: c.DisplayValue,
	}

	if !c.Type.IsContainer() {
		return n
	}

	n.Children = make([]*Node, 0, len(c.members))

	for _, m := range c.members {
		if m.label == "" {
			continue
		}

		if child := build(m.label, m.value, s, n.Key); child != nil {
			n.Children = append(n.Children, child)
		}
	}

	return n
}
