package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/refs"
)

func TestValuePrefixModeNone(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	writePayload, err := WriteValuePrefix(buf, nil, refs.ModeNone, nil, false)
	require.NoError(err)
	require.True(writePayload)
	require.Equal(0, buf.Size()) // mode None writes no flag byte
}

func TestValuePrefixModeNoneRejectsNull(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	_, err := WriteValuePrefix(buf, nil, refs.ModeNone, nil, true)
	require.Error(err)
}

func TestValuePrefixNullOnlyRoundTrip(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	writePayload, err := WriteValuePrefix(buf, nil, refs.ModeNullOnly, nil, true)
	require.NoError(err)
	require.False(writePayload)

	result, err := ReadValuePrefix(buf, nil, refs.ModeNullOnly)
	require.NoError(err)
	require.True(result.IsDefault)
}

func TestValuePrefixTrackingFirstAndRepeat(t *testing.T) {
	require := require.New(t)

	wt := refs.NewWriteTracker()
	buf := buffer.New()

	type obj struct{ v int }
	a := &obj{1}

	writePayload1, err := WriteValuePrefix(buf, wt, refs.ModeTracking, a, false)
	require.NoError(err)
	require.True(writePayload1)

	writePayload2, err := WriteValuePrefix(buf, wt, refs.ModeTracking, a, false)
	require.NoError(err)
	require.False(writePayload2)

	rt := refs.NewReadTracker()

	result1, err := ReadValuePrefix(buf, rt, refs.ModeTracking)
	require.NoError(err)
	require.True(result1.HasReservedID)
	rt.Bind(result1.ReservedID, "decoded-a")

	result2, err := ReadValuePrefix(buf, rt, refs.ModeTracking)
	require.NoError(err)
	require.True(result2.IsResolved)
	require.Equal("decoded-a", result2.Resolved)
}
