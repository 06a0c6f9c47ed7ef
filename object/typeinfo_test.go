package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/metastring"
	"github.com/arloliu/xwire/typemeta"
	"github.com/arloliu/xwire/wire"
)

func mustMS(t *testing.T, s string) metastring.MetaString {
	t.Helper()

	ms, err := metastring.Encode(s, '.', '_')
	require.NoError(t, err)

	return ms
}

func TestWriteReadTypeInfoScalarKind(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	require.NoError(WriteTypeInfo(buf, nil, wire.KindInt32, TypeRef{}))

	kind, _, err := ReadTypeInfo(buf, nil)
	require.NoError(err)
	require.Equal(wire.KindInt32, kind)
}

func TestWriteReadTypeInfoByID(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	require.NoError(WriteTypeInfo(buf, nil, wire.KindStruct, TypeRef{ByID: true, UserID: 42}))

	kind, ref, err := ReadTypeInfo(buf, nil)
	require.NoError(err)
	require.Equal(wire.KindStruct, kind)
	require.True(ref.ByID)
	require.Equal(uint32(42), ref.UserID)
}

func TestWriteReadTypeInfoByName(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	writeTable := NewMetaStringWriteTable()
	ref := TypeRef{Namespace: mustMS(t, "pkg.sub"), TypeName: mustMS(t, "Widget")}
	require.NoError(WriteTypeInfo(buf, writeTable, wire.KindNamedStruct, ref))

	readTable := NewMetaStringReadTable()
	kind, gotRef, err := ReadTypeInfo(buf, readTable)
	require.NoError(err)
	require.Equal(wire.KindNamedStruct, kind)

	ns, err := metastring.Decode(gotRef.Namespace)
	require.NoError(err)
	require.Equal("pkg.sub", ns)

	name, err := metastring.Decode(gotRef.TypeName)
	require.NoError(err)
	require.Equal("Widget", name)
}

func TestTypeMetaBlockCachesSecondOccurrence(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	writeCache := typemeta.NewWriteCache()
	writeTable := NewMetaStringWriteTable()

	tm := typemeta.New(mustMS(t, "pkg"), mustMS(t, "Widget"), []typemeta.FieldDescriptor{
		{Name: mustMS(t, "id"), WireKind: wire.KindInt64},
	})

	require.NoError(WriteTypeMetaBlock(buf, writeCache, writeTable, tm))
	require.NoError(WriteTypeMetaBlock(buf, writeCache, writeTable, tm))

	readCache := typemeta.NewReadCache()
	readTable := NewMetaStringReadTable()

	got1, err := ReadTypeMetaBlock(buf, readCache, readTable)
	require.NoError(err)
	require.Equal(tm.Hash, got1.Hash)
	require.Len(got1.Fields, 1)

	got2, err := ReadTypeMetaBlock(buf, readCache, readTable)
	require.NoError(err)
	require.Equal(tm.Hash, got2.Hash)
}

func TestMetaStringTableBackReference(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	wt := NewMetaStringWriteTable()
	ms := mustMS(t, "repeated.name")

	require.NoError(wt.Write(buf, ms))
	require.NoError(wt.Write(buf, ms))

	rt := NewMetaStringReadTable()

	got1, err := rt.Read(buf)
	require.NoError(err)

	got2, err := rt.Read(buf)
	require.NoError(err)
	require.Equal(got1.Data, got2.Data)
}

func TestMetaStringTableLongEntryUsesSentinel(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	wt := NewMetaStringWriteTable()

	long := ""
	for i := 0; i < 64; i++ {
		long += "a"
	}

	ms := mustMS(t, long)
	require.NoError(wt.Write(buf, ms))

	rt := NewMetaStringReadTable()
	got, err := rt.Read(buf)
	require.NoError(err)

	decoded, err := metastring.Decode(got)
	require.NoError(err)
	require.Equal(long, decoded)
}
