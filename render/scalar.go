package render

import (
	"strings"

	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// renderScalarTemplate substitutes every {path} or {path?} token in tmpl
// against ctx, coercing resolved values to string per spec.md §4.4's
// coercion rules. A required placeholder (no trailing ?) whose path is not
// found yields [fmerr.ErrVariableNotFound]; a path that resolves to Null
// coerces to "" regardless of the ? marker, same as a missing optional. An
// array or map in a scalar slot yields [fmerr.ErrInvalidTemplateFormat].
func renderScalarTemplate(nodePath, tmpl string, ctx value.Value) (value.Value, error) {
	var out strings.Builder

	i := 0

	for i < len(tmpl) {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			out.WriteString(tmpl[i:])

			break
		}

		out.WriteString(tmpl[i : i+open])

		start := i + open + 1

		closeIdx := strings.IndexByte(tmpl[start:], '}')
		if closeIdx < 0 {
			return value.Value{}, fmerr.InvalidTemplateFormat(nodePath, "unterminated placeholder")
		}

		token := tmpl[start : start+closeIdx]
		i = start + closeIdx + 1

		optional := strings.HasSuffix(token, "?")
		varPath := strings.TrimSuffix(token, "?")

		resolved, ok := ctx.At(varPath)
		if !ok {
			if optional {
				continue
			}

			return value.Value{}, fmerr.VariableNotFound(nodePath)
		}

		if !resolved.IsScalar() {
			return value.Value{}, fmerr.InvalidTemplateFormat(nodePath, "placeholder resolved to a non-scalar value")
		}

		out.WriteString(resolved.CoerceString())
	}

	return value.Str(out.String()), nil
}
