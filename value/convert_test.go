package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.fmschema.dev/fmschema/value"
)

func TestFromOrderedAny_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	in := []value.KV{
		{Key: "zeta", Value: "z"},
		{Key: "alpha", Value: []value.KV{
			{Key: "nested2", Value: int64(2)},
			{Key: "nested1", Value: int64(1)},
		}},
		{Key: "list", Value: []any{"a", "b"}},
	}

	v := value.FromOrderedAny(in)
	require.Equal(t, value.KindMap, v.Kind())
	assert.Equal(t, []string{"zeta", "alpha", "list"}, v.Map().Keys())

	nested, ok := v.At("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"nested2", "nested1"}, nested.Map().Keys())

	list, ok := v.At("list")
	require.True(t, ok)
	require.Len(t, list.Array(), 2)
	assert.Equal(t, "a", list.Array()[0].Str())
}
