package directive_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.fmschema.dev/fmschema/directive"
	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

func mustInsert(t *testing.T, v *value.Value, path string, val value.Value) {
	t.Helper()
	require.NoError(t, v.Insert(path, val))
}

// s1Schema mirrors the seed scenario S1: availableConfigs derived and
// deduplicated from c1, commands expanded one item per document.
func s1Schema(t *testing.T) value.Value {
	t.Helper()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "availableConfigs", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "availableConfigs.x-derived-from", value.Str("c1"))
	mustInsert(t, &root, "availableConfigs.x-derived-unique", value.Bool(true))

	mustInsert(t, &root, "commands", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "commands.x-frontmatter-part", value.Bool(true))

	item := value.Map(value.NewOrderedMap())
	mustInsert(t, &item, "c1", value.Str("{c1}"))
	mustInsert(t, &item, "c2", value.Str("{c2}"))
	mustInsert(t, &item, "c3", value.Str("{c3}"))
	mustInsert(t, &root, "commands.items", item)

	return root
}

func TestWalker_S1Basic(t *testing.T) {
	t.Parallel()

	w := directive.NewWalker()

	sites, err := w.Walk(s1Schema(t))
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "availableConfigs", sites[0].NodePath)
	require.Len(t, sites[0].Directives, 2)
	assert.Equal(t, directive.KindDerivedFrom, sites[0].Directives[0].Kind)
	assert.Equal(t, directive.KindDerivedUnique, sites[0].Directives[1].Kind)

	assert.Equal(t, "commands", sites[1].NodePath)
	require.Len(t, sites[1].Directives, 1)
	assert.Equal(t, directive.KindFrontmatterPart, sites[1].Directives[0].Kind)
}

func TestWalker_DerivedFromMergeConflict(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "cmds", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "cmds.x-derived-from", value.Str("c1"))
	mustInsert(t, &root, "cmds.x-merge-arrays", value.Bool(true))

	_, err := directive.NewWalker().Walk(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fmerr.ErrDirectiveConflict))
}

func TestWalker_DerivedUniqueRequiresDerivedFrom(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "cmds", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "cmds.x-derived-unique", value.Bool(true))

	_, err := directive.NewWalker().Walk(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fmerr.ErrDirectiveDependencyMissing))
}

func TestWalker_FrontmatterPartRequiresItems(t *testing.T) {
	t.Parallel()

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "commands", value.Map(value.NewOrderedMap()))
	mustInsert(t, &root, "commands.x-frontmatter-part", value.Bool(true))

	_, err := directive.NewWalker().Walk(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fmerr.ErrInvalidDirectivePayload))
}

func TestWalker_PropertiesWrappedSchema(t *testing.T) {
	t.Parallel()

	inner := value.Map(value.NewOrderedMap())
	mustInsert(t, &inner, "x-derived-from", value.Str("c1"))

	props := value.Map(value.NewOrderedMap())
	mustInsert(t, &props, "availableConfigs", inner)

	root := value.Map(value.NewOrderedMap())
	mustInsert(t, &root, "type", value.Str("object"))
	mustInsert(t, &root, "properties", props)

	sites, err := directive.NewWalker().Walk(root)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "availableConfigs", sites[0].NodePath)
}

func TestWalker_CyclicSchemaRejected(t *testing.T) {
	t.Parallel()

	shared := value.NewOrderedMap()
	node := value.Map(shared)
	shared.Set("child", node) // node references itself

	_, err := directive.NewWalker().Walk(node)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fmerr.ErrDirectiveConflict))
}
