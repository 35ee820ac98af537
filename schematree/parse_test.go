package schematree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
	"go.jacobcolvin.com/mocktree/schematree"
	"go.jacobcolvin.com/mocktree/stringtest"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
	}{
		"json": {
			input: stringtest.Input(`
				{
				  "type": "object",
				  "required": ["zeta", "items"],
				  "properties": {
				    "zeta": {"type": "string", "default": "z"},
				    "alpha": {"type": ["integer", "null"]},
				    "items": {
				      "type": "array",
				      "items": {
				        "type": "object",
				        "properties": {
				          "y": {"type": "boolean"},
				          "x": {"$ref": "#/$defs/num"}
				        }
				      }
				    }
				  },
				  "$defs": {"num": {"type": "number", "default": 1.5}}
				}`),
		},
		"yaml": {
			input: stringtest.Input(`
				type: object
				required: [zeta, items]
				properties:
				  zeta:
				    type: string
				    default: z
				  alpha:
				    type: [integer, "null"]
				  items:
				    type: array
				    items:
				      type: object
				      properties:
				        y:
				          type: boolean
				        x:
				          $ref: "#/$defs/num"
				$defs:
				  num:
				    type: number
				    default: 1.5
				`),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root, err := schematree.Parse("response", []byte(tc.input))
			require.NoError(t, err)

			// Document order is kept at every level.
			assert.Equal(t, []string{"zeta", "alpha", "items"}, labels(root.Children))
			assert.Equal(t, []string{"y", "x"}, labels(root.Find("response-items-item_0").Children))

			zeta := root.Find("response-zeta")
			assert.True(t, zeta.Required)
			assert.Equal(t, "z", zeta.RealValue)

			alpha := root.Find("response-alpha")
			assert.False(t, alpha.Required)
			assert.Equal(t, mocktree.TypeInteger, alpha.Type)

			x := root.Find("response-items-item_0-x")
			require.NotNil(t, x)
			assert.Equal(t, mocktree.TypeNumber, x.Type)
			assert.Equal(t, 1.5, x.RealValue)
			assert.Equal(t, "1.5", x.DisplayValue)
		})
	}
}

func TestDecodePropertyOrder(t *testing.T) {
	t.Parallel()

	s, err := schematree.Decode([]byte(`{"properties": {"b": {"type": "string"}, "a": true}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, s.PropertyOrder)

	s, err = schematree.Decode([]byte("allOf:\n  - properties:\n      d: {}\n      c: {}\n"))
	require.NoError(t, err)
	require.Len(t, s.AllOf, 1)
	assert.Equal(t, []string{"d", "c"}, s.AllOf[0].PropertyOrder)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  error
		input string
	}{
		"empty document": {
			input: "  \n",
			want:  schematree.ErrInvalidSchema,
		},
		"syntax error": {
			input: `{"type": `,
			want:  schematree.ErrInvalidSchema,
		},
		"wrong keyword type": {
			input: `{"type": 5}`,
			want:  schematree.ErrInvalidSchema,
		},
		"untyped": {
			input: `{"description": "anything"}`,
			want:  schematree.ErrUnsupportedSchema,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := schematree.Parse("root", []byte(tc.input))
			require.ErrorIs(t, err, tc.want)
		})
	}
}
