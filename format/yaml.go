package format

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"go.fmschema.dev/fmschema/value"
)

// marshalYAML renders v in block style with indent-space indentation
// (default 2). Every string leaf is pre-quoted or left bare by
// [needsYAMLQuote] before reaching the encoder: go-yaml's own quoting
// heuristic is close to spec but not identical, so this package decides
// quoting itself rather than trusting the library's default.
func marshalYAML(v value.Value, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = yaml.DefaultIndentSpaces
	}

	converted, err := toYAML(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf, yaml.Indent(indent))
	if err := enc.Encode(converted); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func toYAML(v value.Value) (any, error) {
	switch v.Kind() {
	case value.KindNull:
		return nil, nil
	case value.KindBool:
		return v.Bool(), nil
	case value.KindInt:
		return v.Int(), nil
	case value.KindFloat:
		return v.Float(), nil
	case value.KindString:
		return yamlString(v.Str()), nil
	case value.KindArray:
		return toYAMLArray(v)
	case value.KindMap:
		return toYAMLMap(v)
	default:
		return nil, nil
	}
}

func toYAMLArray(v value.Value) (any, error) {
	items := v.Array()
	out := make([]any, len(items))

	for i, item := range items {
		converted, err := toYAML(item)
		if err != nil {
			return nil, err
		}

		out[i] = converted
	}

	return out, nil
}

func toYAMLMap(v value.Value) (any, error) {
	out := make(yaml.MapSlice, 0, v.Map().Len())

	var rangeErr error

	v.Map().Range(func(key string, child value.Value) bool {
		converted, err := toYAML(child)
		if err != nil {
			rangeErr = err

			return false
		}

		out = append(out, yaml.MapItem{Key: key, Value: converted})

		return true
	})

	if rangeErr != nil {
		return nil, rangeErr
	}

	return out, nil
}

// yamlString forces the exact bytes of a string scalar in place of
// go-yaml's own quote-or-not decision: [MarshalYAML] returns the already-
// resolved literal, quoted or bare, and go-yaml splices it verbatim.
type yamlString string

// MarshalYAML implements yaml.BytesMarshaler.
func (s yamlString) MarshalYAML() ([]byte, error) {
	if needsYAMLQuote(string(s)) {
		return []byte(strconv.Quote(string(s))), nil
	}

	return []byte(s), nil
}

// needsYAMLQuote reports whether a string scalar must be quoted per the
// documented rule set: special characters, a leading "-" or "?", a
// boolean/null literal, an empty string, or a number-looking string.
func needsYAMLQuote(s string) bool {
	if s == "" {
		return true
	}

	if strings.ContainsAny(s, ":#&*!|>'\"%@`") {
		return true
	}

	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "?") {
		return true
	}

	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "on", "off", "null", "~":
		return true
	}

	return looksNumeric(s)
}

func looksNumeric(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}

	return false
}
