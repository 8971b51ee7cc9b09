package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestRun_EndToEnd_JSON(t *testing.T) {
	dir := t.TempDir()

	schemaPath := writeFile(t, dir, "schema.json", `{
		"type": "object",
		"properties": {
			"authors": {
				"type": "array",
				"x-derived-from": "author",
				"x-derived-unique": true,
				"items": {"type": "string"}
			}
		}
	}`)

	writeFile(t, dir, "a.md", "---\nauthor: jane\n---\nbody a\n")
	writeFile(t, dir, "b.md", "---\nauthor: bo\n---\nbody b\n")
	writeFile(t, dir, "c.md", "---\nauthor: jane\n---\nbody c\n")

	outputPath := filepath.Join(dir, "out.json")
	pattern := filepath.Join(dir, "*.md")

	code := run([]string{schemaPath, outputPath, pattern})
	require.Equal(t, exitOK, code)

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "jane")
	assert.Contains(t, string(out), "bo")
}

func TestRun_NoMatchesIsUserError(t *testing.T) {
	dir := t.TempDir()

	schemaPath := writeFile(t, dir, "schema.json", `{"type": "object", "properties": {}}`)
	outputPath := filepath.Join(dir, "out.json")
	pattern := filepath.Join(dir, "nothing-*.md")

	code := run([]string{schemaPath, outputPath, pattern})
	assert.Equal(t, exitUserError, code)

	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_UnrecognizedExtensionIsUserError(t *testing.T) {
	dir := t.TempDir()

	schemaPath := writeFile(t, dir, "schema.json", `{"type": "object", "properties": {}}`)
	writeFile(t, dir, "a.md", "---\ntitle: x\n---\nbody\n")

	outputPath := filepath.Join(dir, "out.txt")
	pattern := filepath.Join(dir, "*.md")

	code := run([]string{schemaPath, outputPath, pattern})
	assert.Equal(t, exitUserError, code)
}

func TestRun_DryRunSkipsWrite(t *testing.T) {
	dir := t.TempDir()

	schemaPath := writeFile(t, dir, "schema.json", `{"type": "object", "properties": {}}`)
	writeFile(t, dir, "a.md", "---\ntitle: x\n---\nbody\n")

	outputPath := filepath.Join(dir, "out.json")
	pattern := filepath.Join(dir, "*.md")

	code := run([]string{"--dry-run", schemaPath, outputPath, pattern})
	require.Equal(t, exitOK, code)

	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_PipelineFailureIsCoreError(t *testing.T) {
	dir := t.TempDir()

	schemaPath := writeFile(t, dir, "schema.json", `{
		"type": "object",
		"properties": {
			"broken": {
				"type": "array",
				"x-jmespath-filter": "commands[?c1=="
			}
		}
	}`)
	writeFile(t, dir, "a.md", "---\ntitle: x\n---\nbody\n")

	outputPath := filepath.Join(dir, "out.json")
	pattern := filepath.Join(dir, "*.md")

	code := run([]string{schemaPath, outputPath, pattern})
	assert.Equal(t, exitCoreError, code)
}

func TestRun_ValidateRejectsMissingRequiredField(t *testing.T) {
	dir := t.TempDir()

	schemaPath := writeFile(t, dir, "schema.json", `{
		"type": "object",
		"properties": {
			"title": {"type": "string"}
		},
		"required": ["title"]
	}`)
	writeFile(t, dir, "a.md", "---\nbody_only: true\n---\nno title here\n")

	outputPath := filepath.Join(dir, "out.json")
	pattern := filepath.Join(dir, "*.md")

	code := run([]string{"--validate", schemaPath, outputPath, pattern})
	assert.Equal(t, exitUserError, code)
}
