package mocktree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
)

func pruneTemplate() *mocktree.Node {
	return templateNode("", "root", mocktree.TypeObject, true,
		templateNode("", "optionalObj", mocktree.TypeObject, false,
			templateNode("", "x", mocktree.TypeString, true),
		),
		templateNode("", "requiredObj", mocktree.TypeObject, true,
			templateNode("", "optionalList", mocktree.TypeArray, false,
				templateNode("", "item_0", mocktree.TypeString, true),
			),
			templateNode("", "y", mocktree.TypeString, false),
		),
		templateNode("", "leaf", mocktree.TypeString, false),
	)
}

func TestPrune(t *testing.T) {
	t.Parallel()

	tmpl := pruneTemplate()
	pruned := mocktree.Prune(tmpl)

	assert.Equal(t, []string{"optionalObj", "requiredObj", "leaf"}, labels(pruned.Children))

	assert.Nil(t, pruned.Find("root-optionalObj").Children)
	assert.Nil(t, pruned.Find("root-optionalObj-x"))

	requiredObj := pruned.Find("root-requiredObj")
	require.NotNil(t, requiredObj)
	assert.Equal(t, []string{"optionalList", "y"}, labels(requiredObj.Children))
	assert.Nil(t, pruned.Find("root-requiredObj-optionalList").Children)

	// The input keeps its shape.
	assert.Len(t, tmpl.Find("root-optionalObj").Children, 1)
}

func TestPruneKeepsMatchedContainers(t *testing.T) {
	t.Parallel()

	res := mocktree.Reconcile(pruneTemplate(), ptr(`{"optionalObj":{"x":"v"},"extraObj":{"z":1}}`))
	pruned := mocktree.Prune(res.Root)

	// Matched optional containers are default, removed ones are not added.
	assert.Len(t, pruned.Find("root-optionalObj").Children, 1)
	assert.Len(t, pruned.Find("root-extraObj").Children, 1)
}

func TestPruneIdempotent(t *testing.T) {
	t.Parallel()

	trees := map[string]*mocktree.Node{
		"template": pruneTemplate(),
		"reconciled": mocktree.Reconcile(pruneTemplate(),
			ptr(`{"requiredObj":{"optionalList":["a","b"]},"other":[{"a":1}]}`)).Root,
		"leaf": templateNode("", "leaf", mocktree.TypeString, true),
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			once := mocktree.Prune(tree)
			twice := mocktree.Prune(once)

			assert.Empty(t, cmp.Diff(once, twice))
		})
	}
}

func TestPruneNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mocktree.Prune(nil))
}
