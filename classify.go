package mocktree

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Classification is the result of inspecting a single parsed value.
type Classification struct {
	// RealValue is the normalized scalar value. Integers are held as int64
	// (uint64 above [math.MaxInt64]) and other numbers as float64. It is nil
	// for containers, whose content is carried by their members.
	RealValue    any
	Type         Type
	ChildrenType Type
	DisplayValue string
	members      []member
}

type member struct {
	value any
	label string
}

// Classify determines the structural [Type] and display string of a parsed
// value.
//
// Supported inputs are the values produced by [ParseValue]: nil, bool,
// string, Go integer and float kinds, [json.Number], [yaml.MapSlice],
// map[string]any, and []any. Numbers are always classified as [TypeNumber].
// Arrays report the type of their first element as ChildrenType; it is
// empty when the array is empty or its first element is null.
//
// The second return value is false for nil and for any value that cannot be
// classified; such values produce no node.
func Classify(v any) (Classification, bool) {
	switch val := v.(type) {
	case nil:
		return Classification{}, false

	case bool:
		return Classification{
			Type:         TypeBoolean,
			RealValue:    val,
			DisplayValue: strconv.FormatBool(val),
		}, true

	case string:
		return Classification{
			Type:         TypeString,
			RealValue:    val,
			DisplayValue: val,
		}, true

	case yaml.MapSlice:
		members := make([]member, 0, len(val))
		for _, item := range val {
			members = append(members, member{label: mapKeyName(item.Key), value: item.Value})
		}

		return Classification{
			Type:         TypeObject,
			DisplayValue: displayContainer(val, "{}"),
			members:      members,
		}, true

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		members := make([]member, 0, len(keys))
		for _, k := range keys {
			members = append(members, member{label: k, value: val[k]})
		}

		return Classification{
			Type:         TypeObject,
			DisplayValue: displayContainer(val, "{}"),
			members:      members,
		}, true

	case []any:
		members := make([]member, 0, len(val))
		for i, elem := range val {
			members = append(members, member{label: ItemLabel(i), value: elem})
		}

		c := Classification{
			Type:         TypeArray,
			DisplayValue: displayContainer(val, "[]"),
			members:      members,
		}

		if len(val) > 0 {
			if first, ok := Classify(val[0]); ok {
				c.ChildrenType = first.Type
			}
		}

		return c, true
	}

	num, ok := normalizeNumber(v)
	if !ok {
		return Classification{}, false
	}

	return Classification{
		Type:         TypeNumber,
		RealValue:    num,
		DisplayValue: displayNumber(num),
	}, true
}

// normalizeNumber converts any Go numeric kind to int64, uint64, or float64.
func normalizeNumber(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return normalizeUint(uint64(n)), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return normalizeUint(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		return parseNumber(string(n))
	}

	return nil, false
}

func normalizeUint(n uint64) any {
	if n <= math.MaxInt64 {
		return int64(n)
	}

	return n
}

// parseNumber parses a JSON number literal, preferring integer
// representations when the literal has no fraction or exponent.
func parseNumber(s string) (any, bool) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}

		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, true
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}

	return f, true
}

func displayNumber(num any) string {
	switch n := num.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return formatFloat(n)
	}

	return fmt.Sprint(num)
}

// formatFloat renders f the way a JSON editor would show it: plain decimal
// notation for ordinary magnitudes and exponent notation otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// displayContainer renders a container as compact, order-preserving JSON.
func displayContainer(v any, empty string) string {
	out, err := yaml.MarshalWithOptions(v, yaml.JSON())
	if err != nil {
		return empty
	}

	return strings.TrimSpace(string(out))
}

// mapKeyName returns the member name of an ordered map key. JSON keys are
// always strings; YAML keys may be scalars of any kind.
func mapKeyName(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	if k == nil {
		return ""
	}

	return fmt.Sprint(k)
}
