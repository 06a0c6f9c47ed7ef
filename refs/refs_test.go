package refs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteTrackerFirstAndRepeatSightings(t *testing.T) {
	require := require.New(t)

	w := NewWriteTracker()
	type obj struct{ v int }
	a := &obj{1}
	b := &obj{2}

	id1, first1 := w.Visit(a)
	require.True(first1)
	require.Equal(RefID(0), id1)

	id2, first2 := w.Visit(b)
	require.True(first2)
	require.Equal(RefID(1), id2)

	id3, first3 := w.Visit(a)
	require.False(first3)
	require.Equal(id1, id3)
}

func TestWriteTrackerReset(t *testing.T) {
	require := require.New(t)

	w := NewWriteTracker()
	type obj struct{ v int }
	a := &obj{1}

	w.Visit(a)
	w.Reset()

	id, first := w.Visit(a)
	require.True(first)
	require.Equal(RefID(0), id)
}

func TestReadTrackerReserveAndBindSupportsCycles(t *testing.T) {
	require := require.New(t)

	r := NewReadTracker()

	id := r.Reserve()
	// simulate a self-referential payload resolving its own id mid-decode
	self, err := r.Resolve(id)
	require.NoError(err)
	require.Nil(self)

	r.Bind(id, "done")

	got, err := r.Resolve(id)
	require.NoError(err)
	require.Equal("done", got)
}

func TestReadTrackerResolveOutOfRange(t *testing.T) {
	require := require.New(t)

	r := NewReadTracker()
	_, err := r.Resolve(5)
	require.Error(err)
}
