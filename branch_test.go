package mocktree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()

	//	root
	//	├─ a
	//	├─ b
	//	│  ├─ c
	//	│  └─ d
	//	└─ e
	//	   └─ f
	//	      └─ g
	root := templateNode("", "root", mocktree.TypeObject, true,
		templateNode("", "a", mocktree.TypeString, true),
		templateNode("", "b", mocktree.TypeObject, true,
			templateNode("", "c", mocktree.TypeString, true),
			templateNode("", "d", mocktree.TypeString, true),
		),
		templateNode("", "e", mocktree.TypeObject, true,
			templateNode("", "f", mocktree.TypeObject, true,
				templateNode("", "g", mocktree.TypeString, true),
			),
		),
	)

	v := mocktree.GuideVisible
	h := mocktree.GuideHalf
	n := mocktree.GuideNone

	want := map[string]mocktree.Branch{
		"root-a":     {IsLast: false, Guides: []mocktree.Guide{v}},
		"root-b":     {IsLast: false, Guides: []mocktree.Guide{v}},
		"root-b-c":   {IsLast: false, Guides: []mocktree.Guide{v, v}},
		"root-b-d":   {IsLast: true, Guides: []mocktree.Guide{v, h}},
		"root-e":     {IsLast: true, Guides: []mocktree.Guide{h}},
		"root-e-f":   {IsLast: true, Guides: []mocktree.Guide{n, h}},
		"root-e-f-g": {IsLast: true, Guides: []mocktree.Guide{n, n, h}},
	}

	got := mocktree.Annotate(root)
	assert.Equal(t, want, got)

	_, ok := got["root"]
	assert.False(t, ok)
}

func TestAnnotateSkipsCollapsed(t *testing.T) {
	t.Parallel()

	root := templateNode("", "root", mocktree.TypeObject, true,
		templateNode("", "opt", mocktree.TypeObject, false,
			templateNode("", "hidden", mocktree.TypeString, true),
		),
	)

	got := mocktree.Annotate(mocktree.Prune(root))
	require.Len(t, got, 1)
	assert.Contains(t, got, "root-opt")
}

func TestAnnotateEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mocktree.Annotate(nil))
	assert.Empty(t, mocktree.Annotate(templateNode("", "leaf", mocktree.TypeString, true)))
}
