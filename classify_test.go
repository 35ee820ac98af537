package mocktree_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input        any
		wantValue    any
		wantType     mocktree.Type
		wantChildren mocktree.Type
		wantDisplay  string
	}{
		"string": {
			input:       "hello",
			wantType:    mocktree.TypeString,
			wantValue:   "hello",
			wantDisplay: "hello",
		},
		"empty string": {
			input:       "",
			wantType:    mocktree.TypeString,
			wantValue:   "",
			wantDisplay: "",
		},
		"boolean": {
			input:       true,
			wantType:    mocktree.TypeBoolean,
			wantValue:   true,
			wantDisplay: "true",
		},
		"int is a number": {
			input:       2,
			wantType:    mocktree.TypeNumber,
			wantValue:   int64(2),
			wantDisplay: "2",
		},
		"uint64 above int64 range": {
			input:       uint64(math.MaxUint64),
			wantType:    mocktree.TypeNumber,
			wantValue:   uint64(math.MaxUint64),
			wantDisplay: "18446744073709551615",
		},
		"float": {
			input:       1.5,
			wantType:    mocktree.TypeNumber,
			wantValue:   1.5,
			wantDisplay: "1.5",
		},
		"large float uses plain notation": {
			input:       1e6,
			wantType:    mocktree.TypeNumber,
			wantValue:   1e6,
			wantDisplay: "1000000",
		},
		"json number integer": {
			input:       json.Number("42"),
			wantType:    mocktree.TypeNumber,
			wantValue:   int64(42),
			wantDisplay: "42",
		},
		"json number fraction": {
			input:       json.Number("0.25"),
			wantType:    mocktree.TypeNumber,
			wantValue:   0.25,
			wantDisplay: "0.25",
		},
		"array takes first element type": {
			input:        []any{"a", int64(1)},
			wantType:     mocktree.TypeArray,
			wantChildren: mocktree.TypeString,
		},
		"leading null leaves children type empty": {
			input:    []any{nil, int64(1)},
			wantType: mocktree.TypeArray,
		},
		"empty array has no children type": {
			input:    []any{},
			wantType: mocktree.TypeArray,
		},
		"ordered object": {
			input:    yaml.MapSlice{{Key: "b", Value: int64(1)}, {Key: "a", Value: "x"}},
			wantType: mocktree.TypeObject,
		},
		"map object": {
			input:    map[string]any{"a": true},
			wantType: mocktree.TypeObject,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := mocktree.Classify(tc.input)
			require.True(t, ok)

			assert.Equal(t, tc.wantType, got.Type)
			assert.Equal(t, tc.wantChildren, got.ChildrenType)

			if !tc.wantType.IsContainer() {
				assert.Equal(t, tc.wantValue, got.RealValue)
				assert.Equal(t, tc.wantDisplay, got.DisplayValue)
			} else {
				assert.Nil(t, got.RealValue)
			}
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	t.Parallel()

	tcs := map[string]any{
		"nil":         nil,
		"struct":      struct{}{},
		"bad number":  json.Number("not-a-number"),
		"string list": []string{"a"},
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, ok := mocktree.Classify(input)
			assert.False(t, ok)
		})
	}
}

func TestClassifyContainerDisplay(t *testing.T) {
	t.Parallel()

	obj, ok := mocktree.Classify(yaml.MapSlice{
		{Key: "b", Value: int64(1)},
		{Key: "a", Value: []any{"x", true}},
	})
	require.True(t, ok)
	assert.JSONEq(t, `{"b":1,"a":["x",true]}`, obj.DisplayValue)

	arr, ok := mocktree.Classify([]any{})
	require.True(t, ok)
	assert.JSONEq(t, `[]`, arr.DisplayValue)
}
