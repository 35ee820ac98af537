package mocktree

// Prune collapses optional containers that exist only in the template.
//
// Every descendant container (object or array) that is not Required and has
// [StatusAdded] has its children dropped (set to nil); all other descendants
// are pruned recursively. Siblings are never removed or reordered, n itself
// is never collapsed, and n is not modified. Prune is idempotent.
func Prune(n *Node) *Node {
	if n == nil || len(n.Children) == 0 {
		return n
	}

	out := n.clone()
	out.Children = make([]*Node, len(n.Children))

	for i, child := range n.Children {
		if collapsible(child) {
			collapsed := child.clone()
			collapsed.Children = nil
			out.Children[i] = collapsed

			continue
		}

		out.Children[i] = Prune(child)
	}

	return out
}

func collapsible(n *Node) bool {
	return n.Type.IsContainer() && !n.Required && n.Status == StatusAdded
}
