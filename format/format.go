package format

import (
	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// Format selects one of the three output encodings.
type Format string

// The three formats this package supports.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Marshal encodes v as format, using indent spaces of indentation where the
// target format honors one (JSON and YAML; TOML's table syntax has no
// equivalent knob). indent <= 0 yields compact JSON, and YAML at the
// encoder's default indentation.
func Marshal(v value.Value, f Format, indent int) ([]byte, error) {
	switch f {
	case JSON:
		return marshalJSON(v, indent)
	case YAML:
		return marshalYAML(v, indent)
	case TOML:
		return marshalTOML(v)
	default:
		return nil, fmerr.UnsupportedFormat("unknown output format " + string(f))
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}
