package schemaref

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/kaptinlin/jsonschema"

	"go.fmschema.dev/fmschema/value"
)

// ErrCyclicSchema reports that a schema's $ref graph (or shared subschema
// structure) forms a cycle along one traversal path -- defense in depth
// over the compiler's own resolution, since a cyclic graph here would
// otherwise recurse into toValue forever.
var ErrCyclicSchema = errors.New("cyclic schema reference")

// Resolved is a schema file after $ref resolution: the converted tree the
// core's Walker consumes, plus the compiled [jsonschema.Schema] for an
// optional validation pass over front-matter documents.
type Resolved struct {
	Value  value.Value
	Schema *jsonschema.Schema
}

// Resolve reads and compiles the schema file at path, replacing every
// $ref with its referenced subtree before conversion ($dynamicRef is not
// followed). Each node of the returned tree keeps properties, items, type
// and the keywords the compiler leaves in Schema.Extra (every x-* directive
// among them); $defs and the other keywords the compiler models are not
// copied onto it.
func Resolve(path string) (Resolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resolved{}, fmt.Errorf("read schema %s: %w", path, err)
	}

	compiler := jsonschema.NewCompiler()

	compiled, err := compiler.Compile(data, path)
	if err != nil {
		return Resolved{}, fmt.Errorf("compile schema %s: %w", path, err)
	}

	resolved, err := toValue(compiled, map[*jsonschema.Schema]bool{})
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Value: resolved, Schema: compiled}, nil
}

// Validate checks data (as produced by [value.Value.ToAny]) against the
// compiled schema, for the CLI's optional --validate pre-pass.
func Validate(schema *jsonschema.Schema, data any) error {
	result := schema.Validate(data)
	if result.IsValid() {
		return nil
	}

	return fmt.Errorf("document fails schema validation")
}

// toValue walks a compiled schema, substituting every $ref with its
// resolved target and folding unrecognized keywords (x-* directives
// included) from Extra back into the tree, producing the flat JSON-
// Schema-shaped Value the directive Walker expects.
func toValue(s *jsonschema.Schema, ancestors map[*jsonschema.Schema]bool) (value.Value, error) {
	if s == nil {
		return value.Null(), nil
	}

	if s.Ref != "" && s.ResolvedRef != nil {
		s = s.ResolvedRef
	}

	if ancestors[s] {
		return value.Value{}, ErrCyclicSchema
	}

	ancestors[s] = true
	defer delete(ancestors, s)

	m := value.NewOrderedMap()

	if s.Properties != nil && len(*s.Properties) > 0 {
		props, err := toValueProperties(*s.Properties, ancestors)
		if err != nil {
			return value.Value{}, err
		}

		m.Set("properties", value.Map(props))
	}

	if s.Items != nil {
		items, err := toValue(s.Items, ancestors)
		if err != nil {
			return value.Value{}, err
		}

		m.Set("items", items)
	}

	switch len(s.Type) {
	case 0:
	case 1:
		m.Set("type", value.Str(s.Type[0]))
	default:
		types := make([]value.Value, len(s.Type))
		for i, t := range s.Type {
			types[i] = value.Str(t)
		}

		m.Set("type", value.ArrayFrom(types))
	}

	for _, key := range sortedExtraKeys(s.Extra) {
		m.Set(key, value.FromAny(s.Extra[key]))
	}

	return value.Map(m), nil
}

func toValueProperties(props jsonschema.SchemaMap, ancestors map[*jsonschema.Schema]bool) (*value.OrderedMap, error) {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := value.NewOrderedMap()

	for _, key := range keys {
		converted, err := toValue(props[key], ancestors)
		if err != nil {
			return nil, err
		}

		out.Set(key, converted)
	}

	return out, nil
}

func sortedExtraKeys(extra map[string]any) []string {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
