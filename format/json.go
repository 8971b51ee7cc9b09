package format

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// marshalJSON renders v as RFC 8259 JSON with indent-space indentation.
// indent <= 0 produces compact output with no inserted whitespace.
func marshalJSON(v value.Value, indent int) ([]byte, error) {
	if path, ok := findNonFiniteFloat(v, ""); ok {
		return nil, fmerr.UnsupportedFloat(path)
	}

	compact, err := json.Marshal(jsonValue{v})
	if err != nil {
		return nil, err
	}

	if indent <= 0 {
		return compact, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// findNonFiniteFloat walks v looking for a NaN or +/-Inf float, which RFC
// 8259 has no representation for. Returns the first offending node's path.
func findNonFiniteFloat(v value.Value, path string) (string, bool) {
	switch v.Kind() {
	case value.KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return path, true
		}

		return "", false
	case value.KindArray:
		for _, item := range v.Array() {
			if p, found := findNonFiniteFloat(item, path); found {
				return p, true
			}
		}

		return "", false
	case value.KindMap:
		var (
			found bool
			at    string
		)

		v.Map().Range(func(key string, child value.Value) bool {
			if p, ok := findNonFiniteFloat(child, joinPath(path, key)); ok {
				found, at = true, p

				return false
			}

			return true
		})

		return at, found
	default:
		return "", false
	}
}

// jsonValue adapts a [value.Value] to [json.Marshaler], walking its
// OrderedMap in declaration order instead of encoding/json's default
// alphabetical key sort.
type jsonValue struct {
	v value.Value
}

// MarshalJSON implements json.Marshaler.
func (j jsonValue) MarshalJSON() ([]byte, error) {
	switch j.v.Kind() {
	case value.KindNull:
		return []byte("null"), nil
	case value.KindBool:
		return json.Marshal(j.v.Bool())
	case value.KindInt:
		return json.Marshal(j.v.Int())
	case value.KindFloat:
		return json.Marshal(j.v.Float())
	case value.KindString:
		return json.Marshal(j.v.Str())
	case value.KindArray:
		return j.marshalArray()
	case value.KindMap:
		return j.marshalMap()
	default:
		return []byte("null"), nil
	}
}

func (j jsonValue) marshalArray() ([]byte, error) {
	items := j.v.Array()

	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}

		encoded, err := json.Marshal(jsonValue{item})
		if err != nil {
			return nil, err
		}

		buf.Write(encoded)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

func (j jsonValue) marshalMap() ([]byte, error) {
	var (
		buf      bytes.Buffer
		first    = true
		rangeErr error
	)

	buf.WriteByte('{')

	j.v.Map().Range(func(key string, child value.Value) bool {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		keyBytes, err := json.Marshal(key)
		if err != nil {
			rangeErr = err

			return false
		}

		buf.Write(keyBytes)
		buf.WriteByte(':')

		encoded, err := json.Marshal(jsonValue{child})
		if err != nil {
			rangeErr = err

			return false
		}

		buf.Write(encoded)

		return true
	})

	if rangeErr != nil {
		return nil, rangeErr
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
