package typemeta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/metastring"
	"github.com/arloliu/xwire/wire"
)

func mustEncode(t *testing.T, s string) metastring.MetaString {
	t.Helper()

	ms, err := metastring.Encode(s, '.', '_')
	require.NoError(t, err)

	return ms
}

func TestComputeHashDeterministicAndFlagSensitive(t *testing.T) {
	require := require.New(t)

	fields := []FieldDescriptor{
		{Name: mustEncode(t, "id"), WireKind: wire.KindInt64, Flags: 0},
		{Name: mustEncode(t, "name"), WireKind: wire.KindString, Flags: FlagNullable},
	}

	h1 := ComputeHash(fields)
	h2 := ComputeHash(fields)
	require.Equal(h1, h2)

	fields2 := []FieldDescriptor{
		{Name: mustEncode(t, "id"), WireKind: wire.KindInt64, Flags: 0},
		{Name: mustEncode(t, "name"), WireKind: wire.KindString, Flags: FlagNullable | FlagTrackRef},
	}
	require.NotEqual(h1, ComputeHash(fields2))
}

func TestFieldDescriptorFlags(t *testing.T) {
	require := require.New(t)

	f := FieldDescriptor{Flags: FlagNullable | FlagHasGenericParams}
	require.True(f.Nullable())
	require.False(f.TrackRef())
	require.True(f.HasGenericParams())
}

func TestFieldByName(t *testing.T) {
	require := require.New(t)

	tm := New(mustEncode(t, "pkg"), mustEncode(t, "Widget"), []FieldDescriptor{
		{Name: mustEncode(t, "count"), WireKind: wire.KindInt32},
	})

	f, ok := tm.FieldByName("count")
	require.True(ok)
	require.Equal(wire.KindInt32, f.WireKind)

	_, ok = tm.FieldByName("missing")
	require.False(ok)
}

func TestWriteCacheAssignsAndCaches(t *testing.T) {
	require := require.New(t)

	c := NewWriteCache()
	tm := New(mustEncode(t, "pkg"), mustEncode(t, "Widget"), nil)

	idx1, cached1 := c.Lookup(tm)
	require.False(cached1)
	require.Equal(0, idx1)

	idx2, cached2 := c.Lookup(tm)
	require.True(cached2)
	require.Equal(idx1, idx2)

	other := New(mustEncode(t, "pkg"), mustEncode(t, "Gadget"), []FieldDescriptor{
		{Name: mustEncode(t, "x"), WireKind: wire.KindBool},
	})
	idx3, cached3 := c.Lookup(other)
	require.False(cached3)
	require.Equal(1, idx3)
}

func TestReadCacheRoundTrip(t *testing.T) {
	require := require.New(t)

	c := NewReadCache()
	tm := New(mustEncode(t, "pkg"), mustEncode(t, "Widget"), nil)

	idx := c.Add(tm)
	got, ok := c.Get(idx)
	require.True(ok)
	require.Equal(tm.Hash, got.Hash)

	_, ok = c.Get(idx + 1)
	require.False(ok)
}
