// Package magicschema bootstraps a JSON Schema (Draft 7) skeleton from one
// or more sample front-matter documents, on a best-effort basis. It infers
// types from YAML structure, lifts plain comments into descriptions, and
// reads "x-" hint comments into the schema's Extra map so a freshly
// generated skeleton already carries placeholder directive fields, ready
// for a human to refine.
//
// The generated schema is designed to fail open -- it never assumes a
// sample document is a complete representation of the real schema. Its
// job is to save the tedium of transcribing a front-matter shape by hand,
// not to replace a reviewed, hand-maintained schema.
//
// # Design Principles
//
//  1. Fail open: generated schemas should help users, not block them.
//     Default additionalProperties to true, and never mark a property as
//     required; required fields are something an author adds by hand once
//     they've decided the shape is settled.
//
//  2. Best-effort: extract as much schema information as possible from
//     structure and comments. Silently fall back to an unconstrained
//     schema rather than failing on input it doesn't recognize.
//
//  3. Union semantics: when processing multiple sample documents, produce
//     a schema representing the union of all inputs. Conflicting types
//     widen to the most general type, and a hint set on any one sample is
//     carried into the merged result.
//
// # Schema Generation Pipeline
//
// [Generator.Generate] processes YAML inputs through a four-phase pipeline:
//
//  1. Parse YAML: each input is parsed using goccy/go-yaml with comment
//     preservation. Only the first document in each input is used. Empty
//     input produces the "true" schema (validates everything). Anchors and
//     aliases are resolved by walking the AST first.
//
//  2. Infer structure: the YAML node tree is walked depth-first. Boolean,
//     integer, float, and string literals map to their JSON Schema types.
//     Null and empty values emit no type constraint (maximally
//     permissive). Objects recurse into children. Arrays infer items from
//     element types, merging item schemas when every element is a mapping.
//
//  3. Lift comments: for each key, a plain comment (one that isn't an "x-"
//     hint line) becomes the property's description. A comment line of the
//     form "x-<name>: <value>" is instead parsed as a directive hint and
//     placed on the property's Extra map under that key, using YAML scalar
//     rules to parse the value.
//
//  4. Merge multiple inputs: when multiple samples are provided, schemas
//     are generated independently and merged with union semantics.
//     Properties are unioned, conflicting types are widened (integer +
//     number becomes number; incompatible types drop the type constraint
//     entirely), and Extra maps are unioned key-by-key. Property order in
//     the output follows YAML source order via each schema node's
//     PropertyOrder field.
//
// # Errors
//
// The package defines sentinel errors for use with [errors.Is]:
//
//   - [ErrInvalidYAML]: the input is not valid YAML syntax (fatal).
//   - [ErrReadInput]: an I/O error occurred reading input (fatal).
//   - [ErrWriteOutput]: an I/O error occurred writing output (fatal).
//
// # CLI Integration
//
// [Config] bridges CLI flags to the library, following the RegisterFlags /
// RegisterCompletions / NewGenerator pattern. The [Flags] type within
// [Config] allows callers to customize flag names while keeping sensible
// defaults.
//
// # Basic Usage
//
//	gen := magicschema.NewGenerator()
//	schema, err := gen.Generate(sampleYAML)
//	out, _ := json.MarshalIndent(schema, "", "  ")
//
// # With Options
//
//	gen := magicschema.NewGenerator(
//	    magicschema.WithTitle("Post front matter"),
//	    magicschema.WithStrict(true),
//	)
//	schema, err := gen.Generate(sample1, sample2)
//
// [jsonschema.Schema]: https://pkg.go.dev/github.com/google/jsonschema-go/jsonschema#Schema
package magicschema
