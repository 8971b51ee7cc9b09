package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.fmschema.dev/fmschema/aggregate"
	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/render"
	"go.fmschema.dev/fmschema/value"
)

func mustInsert(t *testing.T, v *value.Value, path string, val value.Value) {
	t.Helper()
	require.NoError(t, v.Insert(path, val))
}

func TestRenderer_S1BasicRegistry(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "availableConfigs", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "commands", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "commands.x-frontmatter-part", value.Bool(true))

	item := value.Map(value.NewOrderedMap())
	mustInsert(t, &item, "c1", value.Str("{c1}"))
	mustInsert(t, &item, "c2", value.Str("{c2}"))
	mustInsert(t, &item, "c3", value.Str("{c3}"))
	mustInsert(t, &root, "commands.items", item)

	doc1 := value.Map(value.NewOrderedMap())
	mustInsert(t, &doc1, "c1", value.Str("git"))
	mustInsert(t, &doc1, "c2", value.Str("create"))
	mustInsert(t, &doc1, "c3", value.Str("refinement-issue"))

	doc2 := value.Map(value.NewOrderedMap())
	mustInsert(t, &doc2, "c1", value.Str("spec"))
	mustInsert(t, &doc2, "c2", value.Str("analyze"))
	mustInsert(t, &doc2, "c3", value.Str("quality-metrics"))

	batch := aggregate.Batch{
		{SourcePath: "a.md", Data: doc1},
		{SourcePath: "b.md", Data: doc2},
	}

	aggregated := map[string]value.Value{
		"availableConfigs": value.Array(value.Str("git"), value.Str("spec")),
	}

	out, err := render.NewRenderer(render.Options{}).Render(context.Background(), root, batch, aggregated)
	require.NoError(t, err)

	configs, ok := out.At("availableConfigs")
	require.True(t, ok)
	assert.Equal(t, []string{"git", "spec"}, mapStrs(configs))

	commands, ok := out.At("commands")
	require.True(t, ok)
	require.Len(t, commands.Array(), 2)

	c1, ok := commands.Array()[0].At("c1")
	require.True(t, ok)
	assert.Equal(t, "git", c1.Str())
}

func TestRenderer_S5OptionalPlaceholder(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "label", value.Str("{title} — {subtitle?}"))

	docData := value.Map(value.NewOrderedMap())
	mustInsert(t, &docData, "title", value.Str("Launch Plan"))

	batch := aggregate.Batch{{SourcePath: "a.md", Data: docData}}

	out, err := render.NewRenderer(render.Options{}).Render(context.Background(), root, batch, nil)
	require.NoError(t, err)

	label, ok := out.At("label")
	require.True(t, ok)
	assert.Equal(t, "Launch Plan — ", label.Str())
}

func TestRenderer_RequiredPlaceholderMissing(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "label", value.Str("{title}"))

	batch := aggregate.Batch{{SourcePath: "a.md", Data: value.Map(value.NewOrderedMap())}}

	_, err := render.NewRenderer(render.Options{}).Render(context.Background(), root, batch, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fmerr.ErrVariableNotFound))
}

func TestRenderer_RequiredPlaceholderResolvesToNull(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "label", value.Str("[{subtitle}]"))

	doc := value.Map(value.NewOrderedMap())
	mustInsert(t, &doc, "subtitle", value.Null())

	batch := aggregate.Batch{{SourcePath: "a.md", Data: doc}}

	out, err := render.NewRenderer(render.Options{}).Render(context.Background(), root, batch, nil)
	require.NoError(t, err)

	label, ok := out.At("label")
	require.True(t, ok)
	assert.Equal(t, "[]", label.Str())
}

func mapStrs(v value.Value) []string {
	out := make([]string, len(v.Array()))
	for i, e := range v.Array() {
		out[i] = e.Str()
	}

	return out
}
