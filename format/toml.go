package format

import (
	"github.com/pelletier/go-toml/v2"

	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// marshalTOML renders v as TOML. Key order is not preserved -- spec's
// Value doc comment scopes order-preservation to "YAML and template
// output" only, and TOML tables carry no ordering concept of their own.
func marshalTOML(v value.Value) ([]byte, error) {
	if err := validateTOMLShape(v, ""); err != nil {
		return nil, err
	}

	native, err := toTOML(v)
	if err != nil {
		return nil, err
	}

	return toml.Marshal(native)
}

// validateTOMLShape rejects the two array shapes TOML cannot express
// without guessing an encoding, per the resolved Open Question on
// arrays-of-arrays: an array containing another array, and an array
// mixing tables with scalars.
func validateTOMLShape(v value.Value, path string) error {
	switch v.Kind() {
	case value.KindArray:
		return validateTOMLArray(v.Array(), path)
	case value.KindMap:
		var rangeErr error

		v.Map().Range(func(key string, child value.Value) bool {
			if err := validateTOMLShape(child, joinPath(path, key)); err != nil {
				rangeErr = err

				return false
			}

			return true
		})

		return rangeErr
	default:
		return nil
	}
}

func validateTOMLArray(items []value.Value, path string) error {
	var hasArray, hasMap, hasScalar bool

	for _, item := range items {
		switch item.Kind() {
		case value.KindArray:
			hasArray = true
		case value.KindMap:
			hasMap = true
		default:
			hasScalar = true
		}
	}

	if hasArray {
		return fmerr.UnsupportedFormat("array of arrays at " + path)
	}

	if hasMap && hasScalar {
		return fmerr.UnsupportedFormat("array mixing scalars and tables at " + path)
	}

	for _, item := range items {
		if err := validateTOMLShape(item, path); err != nil {
			return err
		}
	}

	return nil
}

func toTOML(v value.Value) (any, error) {
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
		return v.Str(), nil
	case value.KindArray:
		return toTOMLArray(v)
	case value.KindMap:
		return toTOMLMap(v)
	default:
		return nil, nil
	}
}

func toTOMLArray(v value.Value) (any, error) {
	items := v.Array()
	out := make([]any, len(items))

	for i, item := range items {
		converted, err := toTOML(item)
		if err != nil {
			return nil, err
		}

		out[i] = converted
	}

	return out, nil
}

func toTOMLMap(v value.Value) (any, error) {
	out := make(map[string]any, v.Map().Len())

	var rangeErr error

	v.Map().Range(func(key string, child value.Value) bool {
		converted, err := toTOML(child)
		if err != nil {
			rangeErr = err

			return false
		}

		out[key] = converted

		return true
	})

	if rangeErr != nil {
		return nil, rangeErr
	}

	return out, nil
}
