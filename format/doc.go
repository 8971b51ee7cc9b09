// Package format implements Component H, the output formatter. It turns a
// completed [value.Value] into JSON, YAML, or TOML bytes, honoring the
// documented quoting and shape rules for each rather than each library's
// own default heuristics.
package format
