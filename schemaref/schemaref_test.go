package schemaref_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.fmschema.dev/fmschema/schemaref"
)

func writeSchema(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestResolve_InlineDirective(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSchema(t, dir, "schema.json", `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"tags": {
				"type": "array",
				"x-derived-from": "title",
				"items": {"type": "string"}
			}
		}
	}`)

	resolved, err := schemaref.Resolve(path)
	require.NoError(t, err)

	props, ok := resolved.Value.At("properties")
	require.True(t, ok)

	tags, ok := props.At("tags")
	require.True(t, ok)

	directive, ok := tags.At("x-derived-from")
	require.True(t, ok)
	assert.Equal(t, "title", directive.Str())

	items, ok := tags.At("items")
	require.True(t, ok)
	itemType, ok := items.At("type")
	require.True(t, ok)
	assert.Equal(t, "string", itemType.Str())
}

func TestResolve_RefIsInlined(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSchema(t, dir, "schema.json", `{
		"type": "object",
		"$defs": {
			"named": {
				"type": "string",
				"x-jmespath-filter": "length(@) > ` + "`0`" + `"
			}
		},
		"properties": {
			"title": {"$ref": "#/$defs/named"}
		}
	}`)

	resolved, err := schemaref.Resolve(path)
	require.NoError(t, err)

	props, ok := resolved.Value.At("properties")
	require.True(t, ok)

	title, ok := props.At("title")
	require.True(t, ok)

	filter, ok := title.At("x-jmespath-filter")
	require.True(t, ok)
	assert.Contains(t, filter.Str(), "length(@)")
}

func TestResolve_InvalidSchemaFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSchema(t, dir, "schema.json", `{not valid json`)

	_, err := schemaref.Resolve(path)
	require.Error(t, err)
}

func TestResolve_MissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := schemaref.Resolve(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestValidate_RejectsMismatchedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSchema(t, dir, "schema.json", `{
		"type": "object",
		"properties": {
			"title": {"type": "string"}
		},
		"required": ["title"]
	}`)

	resolved, err := schemaref.Resolve(path)
	require.NoError(t, err)

	assert.Error(t, schemaref.Validate(resolved.Schema, map[string]any{}))
	assert.NoError(t, schemaref.Validate(resolved.Schema, map[string]any{"title": "ok"}))
}
