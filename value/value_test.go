package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.fmschema.dev/fmschema/value"
)

func TestValue_AtPath(t *testing.T) {
	t.Parallel()

	om := value.NewOrderedMap()
	om.Set("a", value.Map(func() *value.OrderedMap {
		inner := value.NewOrderedMap()
		inner.Set("b", value.Array(value.Str("x"), value.Str("y")))

		return inner
	}()))

	root := value.Map(om)

	tcs := map[string]struct {
		path string
		want value.Value
		ok   bool
	}{
		"map then array index": {
			path: "a.b[1]",
			want: value.Str("y"),
			ok:   true,
		},
		"missing intermediate": {
			path: "a.c",
			ok:   false,
		},
		"index out of range": {
			path: "a.b[5]",
			ok:   false,
		},
		"index into scalar": {
			path: "a.b[0][0]",
			ok:   false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := root.At(tc.path)
			assert.Equal(t, tc.ok, ok)

			if tc.ok {
				assert.True(t, tc.want.Equal(got))
			}
		})
	}
}

func TestValue_Insert(t *testing.T) {
	t.Parallel()

	t.Run("creates intermediate maps", func(t *testing.T) {
		t.Parallel()

		var v value.Value

		err := v.Insert("a.b.c", value.Str("leaf"))
		require.NoError(t, err)

		got, ok := v.At("a.b.c")
		require.True(t, ok)
		assert.Equal(t, "leaf", got.Str())
	})

	t.Run("array index out of range fails", func(t *testing.T) {
		t.Parallel()

		v := value.Array(value.Str("only"))

		err := v.Insert("[5]", value.Str("nope"))
		require.ErrorIs(t, err, value.ErrPathOutOfRange)
	})

	t.Run("array does not grow implicitly", func(t *testing.T) {
		t.Parallel()

		v := value.Array(value.Str("a"), value.Str("b"))

		err := v.Insert("[1]", value.Str("B"))
		require.NoError(t, err)
		require.Len(t, v.Array(), 2)

		got, ok := v.At("[1]")
		require.True(t, ok)
		assert.Equal(t, "B", got.Str())
	})
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	a := value.Array(value.Int(1), value.Str("x"))
	b := value.Array(value.Int(1), value.Str("x"))
	c := value.Array(value.Str("x"), value.Int(1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "array equality is order sensitive")

	om1 := value.NewOrderedMap()
	om1.Set("k1", value.Int(1))
	om1.Set("k2", value.Int(2))

	om2 := value.NewOrderedMap()
	om2.Set("k2", value.Int(2))
	om2.Set("k1", value.Int(1))

	assert.True(t, value.Map(om1).Equal(value.Map(om2)), "map equality is order insensitive")
}

func TestValue_CoerceString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		v    value.Value
		want string
	}{
		"null":         {v: value.Null(), want: ""},
		"true":         {v: value.Bool(true), want: "true"},
		"false":        {v: value.Bool(false), want: "false"},
		"int":          {v: value.Int(42), want: "42"},
		"float":        {v: value.Float(3.5), want: "3.5"},
		"whole float":  {v: value.Float(3), want: "3"},
		"string as is": {v: value.Str("hi"), want: "hi"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.v.CoerceString())
		})
	}
}

func TestValue_DeepClone(t *testing.T) {
	t.Parallel()

	om := value.NewOrderedMap()
	om.Set("tags", value.Array(value.Str("a")))

	original := value.Map(om)
	clone := original.DeepClone()

	// Mutate the clone's nested array; the original must be unaffected.
	cloneTags, _ := clone.At("tags")
	cloneTags.Array()[0] = value.Str("mutated")

	origTags, _ := original.At("tags")
	assert.Equal(t, "a", origTags.Array()[0].Str())
}

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	om := value.NewOrderedMap()
	om.Set("z", value.Int(1))
	om.Set("a", value.Int(2))
	om.Set("m", value.Int(3))

	assert.Equal(t, []string{"z", "a", "m"}, om.Keys())

	om.Set("a", value.Int(20))
	assert.Equal(t, []string{"z", "a", "m"}, om.Keys(), "updating a key must not move it")

	om.Delete("a")
	assert.Equal(t, []string{"z", "m"}, om.Keys())
}

func TestValue_ToAnyFromAny(t *testing.T) {
	t.Parallel()

	om := value.NewOrderedMap()
	om.Set("name", value.Str("git"))
	om.Set("count", value.Int(3))

	v := value.Map(om)
	roundTripped := value.FromAny(v.ToAny())

	assert.True(t, v.Equal(roundTripped))
}
