package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/buffer"
)

func TestCollectionHeaderRoundTrip(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	want := CollectionHeader{Length: 3, TrackingRef: true, HasNull: false, IsDeclaredElementType: true, IsSameType: true}
	WriteCollectionHeader(buf, want)

	got, err := ReadCollectionHeader(buf)
	require.NoError(err)
	require.Equal(want, got)
}

func TestCollectionHeaderEmptySkipsFlagByte(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	WriteCollectionHeader(buf, CollectionHeader{Length: 0})
	require.Equal(1, buf.Size()) // only the varint(0) length byte

	got, err := ReadCollectionHeader(buf)
	require.NoError(err)
	require.Equal(0, got.Length)
}

func TestMapChunkHeaderRoundTrip(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	require.NoError(WriteMapChunkHeader(buf, 255, MapChunkKeySameType|MapChunkValueNull))

	size, flags, err := ReadMapChunkHeader(buf)
	require.NoError(err)
	require.Equal(255, size)
	require.Equal(uint8(MapChunkKeySameType|MapChunkValueNull), flags)
}

func TestMapChunkHeaderRejectsOutOfRange(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	require.Error(WriteMapChunkHeader(buf, 0, 0))
	require.Error(WriteMapChunkHeader(buf, 256, 0))
}

func TestMapSizeRoundTrip(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	WriteMapSize(buf, 42)

	got, err := ReadMapSize(buf)
	require.NoError(err)
	require.Equal(42, got)
}
