package mocktree_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
)

const scenarioMock = `{"bool":true,"num":2,"str":"hello","extra":"extra"}`

func TestMaterialize(t *testing.T) {
	t.Parallel()

	res := mocktree.Reconcile(scalarTemplate(), ptr(scenarioMock))

	got := mocktree.Materialize(res.Root)
	assert.Equal(t, yaml.MapSlice{
		{Key: "bool", Value: true},
		{Key: "int", Value: int64(0)},
		{Key: "num", Value: int64(2)},
		{Key: "str", Value: "hello"},
	}, got)

	out, err := mocktree.EncodeJSON(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bool":true,"int":0,"num":2,"str":"hello"}`, string(out))
}

func TestMaterializeContainers(t *testing.T) {
	t.Parallel()

	tmpl := templateNode("", "root", mocktree.TypeObject, true,
		templateNode("", "opt", mocktree.TypeObject, false,
			templateNode("", "x", mocktree.TypeString, true),
		),
		templateNode("", "list", mocktree.TypeArray, true,
			templateNode("", "item_0", mocktree.TypeNumber, true),
		),
	)

	res := mocktree.Reconcile(tmpl, ptr(`{"list":[1,"two",3]}`))
	got := mocktree.Materialize(mocktree.Prune(res.Root))

	out, err := mocktree.EncodeJSON(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"opt":{},"list":[1,3]}`, string(out))
}

func TestMaterializeRemoved(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mocktree.Materialize(nil))

	n := valueTree(t, "root", `{"a":1}`)
	assert.Nil(t, mocktree.Materialize(n))
}

func TestRepairPatch(t *testing.T) {
	t.Parallel()

	res := mocktree.Reconcile(scalarTemplate(), ptr(scenarioMock))

	patch, err := mocktree.RepairPatch(scenarioMock, res.Root, mocktree.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"extra":null,"int":0}`, string(patch))
}

func TestRepairPatchErrors(t *testing.T) {
	t.Parallel()

	tmpl := templateNode("", "text", mocktree.TypeString, true)

	_, err := mocktree.RepairPatch(`{"a":`, tmpl, mocktree.FormatJSON)
	require.ErrorIs(t, err, mocktree.ErrInvalidInput)

	res := mocktree.Reconcile(tmpl, ptr(`"v"`))
	_, err = mocktree.RepairPatch(`"v"`, res.Root, mocktree.FormatJSON)
	require.ErrorIs(t, err, mocktree.ErrEncode)
}
