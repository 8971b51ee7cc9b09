package directive

import "go.fmschema.dev/fmschema/value"

// Directive is one x-* keyword found on a schema node, with its parsed
// payload.
type Directive struct {
	Kind    Kind
	Payload value.Value
}

// MergeArraysOptions is the parsed payload of x-merge-arrays. A bare
// `x-merge-arrays: true` is equivalent to `{flatten: false}`.
type MergeArraysOptions struct {
	Flatten bool
}

// MergeOptions parses d's payload as x-merge-arrays options. d must have
// Kind == KindMergeArrays.
func MergeOptions(d Directive) MergeArraysOptions {
	if d.Payload.Kind() == value.KindMap {
		if flatten, ok := d.Payload.At("flatten"); ok && flatten.Kind() == value.KindBool {
			return MergeArraysOptions{Flatten: flatten.Bool()}
		}
	}

	return MergeArraysOptions{Flatten: false}
}

// DerivedFromPath returns d's path expression. d must have Kind ==
// KindDerivedFrom.
func DerivedFromPath(d Directive) string {
	return d.Payload.Str()
}

// FilterExpression returns d's JMESPath source. d must have Kind ==
// KindJMESPathFilter.
func FilterExpression(d Directive) string {
	return d.Payload.Str()
}
