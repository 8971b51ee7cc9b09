package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"go.fmschema.dev/fmschema/value"
)

// Sentinel errors, styled on magicschema/generator.go's own
// package-level error variables.
var (
	ErrUnterminatedFence = errors.New("unterminated front-matter fence")
	ErrInvalidYAML       = errors.New("invalid front-matter yaml")
)

const fence = "---"

// Document pairs a parsed front-matter value with the file it came from.
type Document struct {
	SourcePath string
	Data       value.Value
	Body       string
}

// Extract splits content into a front-matter Map and the remaining body.
// Front-matter is recognized only when the file's first line is exactly
// "---"; content without that leading fence has no front-matter and
// Extract returns an empty Map with the whole file as body.
func Extract(sourcePath string, content []byte) (Document, error) {
	text := normalizeNewlines(string(content))

	if !strings.HasPrefix(text, fence+"\n") && text != fence {
		return Document{SourcePath: sourcePath, Data: value.Map(value.NewOrderedMap()), Body: text}, nil
	}

	rest := strings.TrimPrefix(text, fence+"\n")

	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrUnterminatedFence, sourcePath)
	}

	header := rest[:idx]
	body := strings.TrimPrefix(rest[idx+len("\n"+fence):], "\n")

	data, err := parseYAML(header)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, sourcePath, err)
	}

	return Document{SourcePath: sourcePath, Data: data, Body: body}, nil
}

// parseYAML decodes header into a [value.Value], preserving declaration
// order via [yaml.MapSlice] rather than letting the front-matter's field
// order scramble through a plain map[string]any decode.
func parseYAML(header string) (value.Value, error) {
	if strings.TrimSpace(header) == "" {
		return value.Map(value.NewOrderedMap()), nil
	}

	var decoded yaml.MapSlice
	if err := yaml.Unmarshal([]byte(header), &decoded); err != nil {
		return value.Value{}, err
	}

	return value.FromOrderedAny(toOrderedAny(decoded)), nil
}

// toOrderedAny recursively converts goccy/go-yaml's decoded shapes
// (yaml.MapSlice for mappings, []any for sequences, scalars as-is) into
// the []value.KV / []any shapes [value.FromOrderedAny] expects.
func toOrderedAny(in any) any {
	switch t := in.(type) {
	case yaml.MapSlice:
		kvs := make([]value.KV, len(t))
		for i, item := range t {
			kvs[i] = value.KV{Key: fmt.Sprint(item.Key), Value: toOrderedAny(item.Value)}
		}

		return kvs
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toOrderedAny(item)
		}

		return out
	default:
		return t
	}
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
