package mocktree

// Merge reconciles a template sibling list with a value sibling list.
//
// It returns the merged list and whether the value diverges from the
// template anywhere below this level. inArray reports whether both lists are
// the elements of an array.
//
// Matching is template-priority and single pass. Each template node takes
// the first unconsumed value node with the same label whose Type and
// ChildrenType are compatible (see [Type.Compatible]). A match yields a
// [StatusDefault] node carrying the template's Type, ChildrenType, and
// Required with the value's Key, Label, RealValue, and DisplayValue;
// container children are merged recursively. An unmatched template node is
// kept as-is and makes the result incompatible when Required.
//
// In an array, value nodes left over after matching are merged against the
// first template node (the element prototype) irrespective of their labels.
// Any other leftover value nodes are appended unchanged after the
// template-derived nodes and make the result incompatible.
//
// A nil list is "undefined", unlike an empty one: when either list is nil
// the two are concatenated, and the result is incompatible unless both are
// nil. In an array, an empty value list is a compatible empty result.
func Merge(template, value []*Node, inArray bool) ([]*Node, bool) {
	if template == nil || value == nil {
		if template == nil && value == nil {
			return nil, false
		}

		merged := make([]*Node, 0, len(template)+len(value))
		merged = append(merged, template...)
		merged = append(merged, value...)

		return merged, true
	}

	if inArray && len(value) == 0 {
		return []*Node{}, false
	}

	var (
		merged       = make([]*Node, 0, len(template)+len(value))
		consumed     = make([]bool, len(value))
		taken        = make(map[string]bool, len(template)+len(value))
		incompatible bool
	)

	add := func(n *Node) {
		taken[n.Key] = true
		merged = append(merged, n)
	}

	for _, tn := range template {
		idx := matchIndex(tn, value, consumed)
		if idx < 0 {
			if tn.Required {
				incompatible = true
			}

			add(tn)

			continue
		}

		consumed[idx] = true

		n, childIncompatible := combine(tn, value[idx])
		if childIncompatible {
			incompatible = true
		}

		add(n)
	}

	// Leftover array elements are checked against the element prototype.
	var prototype *Node
	if inArray && len(template) > 0 {
		prototype = template[0]
	}

	for i, vn := range value {
		if consumed[i] {
			continue
		}

		if prototype != nil && shapeCompatible(prototype, vn) {
			n, childIncompatible := combine(rekey(prototype, vn.Key), vn)
			if childIncompatible {
				incompatible = true
			}

			add(n)

			continue
		}

		incompatible = true

		add(rekey(vn, uniqueKey(vn.Key, taken)))
	}

	return merged, incompatible
}

// matchIndex returns the index of the first unconsumed value node that
// matches tn, or -1.
func matchIndex(tn *Node, value []*Node, consumed []bool) int {
	for i, vn := range value {
		if consumed[i] {
			continue
		}

		if vn.Label == tn.Label && shapeCompatible(tn, vn) {
			return i
		}
	}

	return -1
}

// shapeCompatible reports whether value node vn may fill template node tn.
// An unknown ChildrenType (an empty array, or a template array without an
// element shape) is compatible with any element type.
func shapeCompatible(tn, vn *Node) bool {
	if !tn.Type.Compatible(vn.Type) {
		return false
	}

	if tn.ChildrenType == "" || vn.ChildrenType == "" {
		return true
	}

	return tn.ChildrenType.Compatible(vn.ChildrenType)
}

// combine builds the merged node for a matched template/value pair.
func combine(tn, vn *Node) (*Node, bool) {
	n := &Node{
		Key:          vn.Key,
		Label:        vn.Label,
		Type:         tn.Type,
		ChildrenType: tn.ChildrenType,
		Required:     tn.Required,
		Status:       StatusDefault,
		RealValue:    vn.RealValue,
		DisplayValue: vn.DisplayValue,
	}

	if !tn.Type.IsContainer() && !vn.Type.IsContainer() {
		return n, false
	}

	children, incompatible := Merge(tn.Children, vn.Children, tn.Type == TypeArray)
	n.Children = children

	return n, incompatible
}
