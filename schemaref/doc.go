// Package schemaref loads a JSON Schema file, resolves every $ref against
// its referenced subtree via github.com/kaptinlin/jsonschema's Draft
// 2020-12 compiler, and converts the result into a [value.Value] whose
// shape follows the schema's properties/items nesting, carrying each
// node's type and x-* directives. It also exposes the
// compiled schema for an optional pre-validation pass over each document's
// front-matter, behind the CLI's --validate flag.
package schemaref
