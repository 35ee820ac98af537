package mocktree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format is the syntax of a raw mock value.
type Format string

const (
	// FormatJSON parses mock values as strict JSON.
	FormatJSON Format = "json"
	// FormatYAML parses mock values as YAML (a superset of JSON).
	FormatYAML Format = "yaml"
)

// GetAllFormatStrings returns the names of all supported formats.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatYAML)}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains([]Format{FormatJSON, FormatYAML}, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: unknown format %q", ErrInvalidOption, s)
}

// ParseValue parses a raw mock value into the ordered value representation
// accepted by [Classify] and [Build]: objects become [yaml.MapSlice] in
// document order, arrays []any, integers int64 (or uint64), other numbers
// float64.
//
// JSON numbers outside the float64 range, such as 1e400, are rejected, so
// [Reconcile] treats such a mock as one opaque string.
//
// Errors wrap [ErrInvalidInput].
func ParseValue(raw string, format Format) (any, error) {
	switch format {
	case FormatYAML:
		var v any

		err := yaml.UnmarshalWithOptions([]byte(raw), &v, yaml.UseOrderedMap())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		return v, nil

	case FormatJSON, "":
		return parseJSON(raw)
	}

	return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidOption, format)
}

// parseJSON decodes a single JSON document token by token so that object
// member order survives decoding.
func parseJSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidInput)
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err //nolint:wrapcheck // Wrapped by parseJSON.
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}

		return nil, fmt.Errorf("unexpected delimiter %q", t)

	case json.Number:
		num, ok := parseNumber(string(t))
		if !ok {
			return nil, fmt.Errorf("invalid number %q", t)
		}

		return num, nil
	}

	// Strings, booleans, and null.
	return tok, nil
}

func decodeJSONObject(dec *json.Decoder) (yaml.MapSlice, error) {
	obj := yaml.MapSlice{}
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err //nolint:wrapcheck // Wrapped by parseJSON.
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		// Duplicate keys keep their first position and their last value.
		if i, dup := index[key]; dup {
			obj[i].Value = val

			continue
		}

		index[key] = len(obj)
		obj = append(obj, yaml.MapItem{Key: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err //nolint:wrapcheck // Wrapped by parseJSON.
	}

	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}

	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		arr = append(arr, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err //nolint:wrapcheck // Wrapped by parseJSON.
	}

	return arr, nil
}

// EncodeJSON encodes an ordered value, as produced by [ParseValue] or
// [Materialize], as JSON.
//
// Errors wrap [ErrEncode].
func EncodeJSON(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.JSON())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return bytes.TrimSpace(out), nil
}
