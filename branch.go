package mocktree

// Guide describes one column of connector lines drawn in front of a tree row.
type Guide string

const (
	// GuideNone draws nothing in the column.
	GuideNone Guide = "none"
	// GuideVisible draws a full vertical line through the row ("│", or "├"
	// in the node's own column).
	GuideVisible Guide = "visible"
	// GuideHalf draws a line from the top of the row to its middle ("└").
	GuideHalf Guide = "half"
)

// Branch is the connector metadata for one rendered row.
type Branch struct {
	// Guides holds one entry per depth level, from the root's children down
	// to the node itself. The last entry is the node's own connector.
	Guides []Guide `json:"guides"`
	IsLast bool    `json:"isLast"`
}

// Annotate computes the [Branch] of every descendant of root, keyed by
// [Node.Key]. The root itself is never drawn with connectors and is not
// included.
//
// A node at depth d (the root's children are at depth 0) has d+1 guides.
// Guide i < d is [GuideVisible] when the node's ancestor at depth i has a
// following sibling and [GuideNone] otherwise; guide d is [GuideVisible] for
// a node with a following sibling and [GuideHalf] for the last child.
func Annotate(root *Node) map[string]Branch {
	branches := make(map[string]Branch)
	if root != nil {
		annotateChildren(root.Children, nil, branches)
	}

	return branches
}

func annotateChildren(children []*Node, ancestors []Guide, branches map[string]Branch) {
	for i, child := range children {
		isLast := i == len(children)-1

		own, carried := GuideVisible, GuideVisible
		if isLast {
			own, carried = GuideHalf, GuideNone
		}

		guides := make([]Guide, len(ancestors)+1)
		copy(guides, ancestors)
		guides[len(ancestors)] = own

		branches[child.Key] = Branch{IsLast: isLast, Guides: guides}

		if len(child.Children) == 0 {
			continue
		}

		next := make([]Guide, len(ancestors)+1)
		copy(next, ancestors)
		next[len(ancestors)] = carried

		annotateChildren(child.Children, next, branches)
	}
}
