package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolGetPutReset(t *testing.T) {
	require := require.New(t)

	p := NewPool(16, 1024)
	buf := p.Get()
	buf.WriteFixedU8(1)
	require.Equal(1, buf.Size())

	p.Put(buf)

	buf2 := p.Get()
	require.Equal(0, buf2.Size())
}

func TestPoolDropsOversizedBuffer(t *testing.T) {
	require := require.New(t)

	p := NewPool(16, 32)
	buf := p.Get()
	buf.Grow(1024)
	p.Put(buf) // silently dropped, not returned to the pool

	buf2 := p.Get()
	require.Less(buf2.Cap(), 1024)
}

func TestPackagePooledHelpers(t *testing.T) {
	require := require.New(t)

	buf := GetPooled()
	buf.WriteFixedU8(9)
	PutPooled(buf)

	buf2 := GetPooled()
	require.Equal(0, buf2.Size())
}
